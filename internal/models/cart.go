package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	PizzaID  primitive.ObjectID `bson:"pizza_id" json:"pizzaId"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Cart holds the pending order of a single user. At most one cart exists per
// user, enforced by a unique index on the user field.
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Items  []CartItem         `bson:"items" json:"items"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
