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

var ErrPizzaNotFound = errors.New("pizza not found")

type PizzaRepository interface {
	Create(ctx context.Context, p *models.Pizza) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pizza, error)
	FindAll(ctx context.Context) ([]models.Pizza, error)
	Update(ctx context.Context, p *models.Pizza) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoPizzaRepo struct {
	col *mongo.Collection
}

func NewMongoPizzaRepo(db *mongo.Database) PizzaRepository {
	return &mongoPizzaRepo{col: db.Collection("pizzas")}
}

func (r *mongoPizzaRepo) Create(ctx context.Context, p *models.Pizza) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *mongoPizzaRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pizza, error) {
	var p models.Pizza
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPizzaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPizzaRepo) FindAll(ctx context.Context) ([]models.Pizza, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var pizzas []models.Pizza
	if err := cur.All(ctx, &pizzas); err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (r *mongoPizzaRepo) Update(ctx context.Context, p *models.Pizza) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

func (r *mongoPizzaRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPizzaNotFound
	}
	return nil
}
