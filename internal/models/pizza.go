package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeNames is the closed set of accepted size variant names.
var SizeNames = map[string]bool{
	"Small":  true,
	"Medium": true,
	"Large":  true,
}

type PizzaSize struct {
	Name       string  `bson:"name" json:"name"`
	ExtraPrice float64 `bson:"extra_price" json:"extraPrice"`
}

type PizzaTopping struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type Pizza struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	BasePrice   float64            `bson:"base_price" json:"basePrice"`
	Flavour     string             `bson:"flavour" json:"flavour"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`

	Sizes    []PizzaSize    `bson:"sizes" json:"sizes"`
	Toppings []PizzaTopping `bson:"toppings" json:"toppings"`
	Images   []Image        `bson:"images" json:"images"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
