package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
)

var ErrCartNotFound = errors.New("cart not found")

type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, c *models.Cart) error
}

type mongoCartRepo struct {
	col *mongo.Collection
}

func NewMongoCartRepo(db *mongo.Database) CartRepository {
	col := db.Collection("carts")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoCartRepo{col: col}
}

func (r *mongoCartRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var c models.Cart
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save upserts the cart keyed by user, creating it lazily on first use.
func (r *mongoCartRepo) Save(ctx context.Context, c *models.Cart) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": c.UserID},
		bson.M{
			"$set":         bson.M{"items": c.Items, "updated_at": c.UpdatedAt},
			"$setOnInsert": bson.M{"user_id": c.UserID, "created_at": c.CreatedAt},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
