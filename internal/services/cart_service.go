package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/repository"
)

// CartService maintains the single per-user cart. The cart is created lazily
// on the first write.
type CartService struct {
	carts  repository.CartRepository
	pizzas repository.PizzaRepository
}

func NewCartService(carts repository.CartRepository, pizzas repository.PizzaRepository) *CartService {
	return &CartService{carts: carts, pizzas: pizzas}
}

func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

// AddItem puts a pizza in the cart. Adding a pizza already present increments
// its quantity.
func (s *CartService) AddItem(ctx context.Context, userID, pizzaID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, validationf("quantity must be at least 1")
	}

	pizza, err := s.pizzas.FindByID(ctx, pizzaID)
	if err != nil {
		if errors.Is(err, repository.ErrPizzaNotFound) {
			return nil, ErrPizzaNotFound
		}
		return nil, fmt.Errorf("failed to find pizza: %w", err)
	}
	if !pizza.IsAvailable {
		return nil, ErrPizzaUnavailable
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].PizzaID == pizzaID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{PizzaID: pizzaID, Quantity: quantity})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, pizzaID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, validationf("quantity must be at least 1")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].PizzaID == pizzaID {
			cart.Items[i].Quantity = quantity
			if err := s.carts.Save(ctx, cart); err != nil {
				return nil, fmt.Errorf("failed to save cart: %w", err)
			}
			return cart, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *CartService) RemoveItem(ctx context.Context, userID, pizzaID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].PizzaID == pizzaID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			if err := s.carts.Save(ctx, cart); err != nil {
				return nil, fmt.Errorf("failed to save cart: %w", err)
			}
			return cart, nil
		}
	}
	return nil, ErrItemNotFound
}
