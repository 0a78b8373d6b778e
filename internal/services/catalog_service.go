package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/repository"
)

// ImageFile is one uploaded multipart image, read into memory.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreatePizzaInput struct {
	Name        string
	Description string
	BasePrice   float64
	Flavour     string
	IsAvailable *bool
	Sizes       []models.PizzaSize
	Toppings    []models.PizzaTopping
	Images      []ImageFile
}

// UpdatePizzaInput is a partial update: nil fields are left untouched,
// supplied sizes/toppings/images replace the existing collections wholesale.
type UpdatePizzaInput struct {
	Name        *string
	Description *string
	BasePrice   *float64
	Flavour     *string
	IsAvailable *bool
	Sizes       []models.PizzaSize
	Toppings    []models.PizzaTopping
	Images      []ImageFile
}

// CatalogService orchestrates pizza creation and maintenance, including the
// media uploads that back the image collection.
type CatalogService struct {
	pizzas repository.PizzaRepository
	users  repository.UserRepository
	images ImageStore
	logger *zap.Logger
}

func NewCatalogService(
	pizzas repository.PizzaRepository,
	users repository.UserRepository,
	images ImageStore,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{pizzas: pizzas, users: users, images: images, logger: logger}
}

// CreatePizza persists a new catalog item for an admin or owner caller. All
// images are uploaded concurrently and awaited jointly; if any upload fails
// the already-uploaded objects are removed and nothing is persisted.
func (s *CatalogService) CreatePizza(ctx context.Context, callerID primitive.ObjectID, in CreatePizzaInput) (*models.Pizza, error) {
	if err := s.requireCatalogRole(ctx, callerID); err != nil {
		return nil, err
	}
	if in.BasePrice < 0 {
		return nil, validationf("basePrice must not be negative")
	}
	if len(in.Images) == 0 {
		return nil, ErrMissingImages
	}

	images, err := s.uploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	isAvailable := true
	if in.IsAvailable != nil {
		isAvailable = *in.IsAvailable
	}

	pizza := &models.Pizza{
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   in.BasePrice,
		Flavour:     in.Flavour,
		IsAvailable: isAvailable,
		Sizes:       in.Sizes,
		Toppings:    in.Toppings,
		Images:      images,
		CreatedBy:   callerID,
	}
	if pizza.Sizes == nil {
		pizza.Sizes = []models.PizzaSize{}
	}
	if pizza.Toppings == nil {
		pizza.Toppings = []models.PizzaTopping{}
	}

	if err := s.pizzas.Create(ctx, pizza); err != nil {
		s.deleteAll(ctx, images)
		return nil, fmt.Errorf("failed to create pizza: %w", err)
	}
	return pizza, nil
}

// UpdatePizza merges the supplied fields into an existing pizza. Omitted
// fields are never altered; a supplied image set replaces the old one, whose
// objects are then removed best-effort.
func (s *CatalogService) UpdatePizza(ctx context.Context, callerID, pizzaID primitive.ObjectID, in UpdatePizzaInput) (*models.Pizza, error) {
	pizza, err := s.findPizza(ctx, pizzaID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCatalogRole(ctx, callerID); err != nil {
		return nil, err
	}
	if in.BasePrice != nil && *in.BasePrice < 0 {
		return nil, validationf("basePrice must not be negative")
	}

	var newImages []models.Image
	if len(in.Images) > 0 {
		newImages, err = s.uploadAll(ctx, in.Images)
		if err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		pizza.Name = *in.Name
	}
	if in.Description != nil {
		pizza.Description = *in.Description
	}
	if in.BasePrice != nil {
		pizza.BasePrice = *in.BasePrice
	}
	if in.Flavour != nil {
		pizza.Flavour = *in.Flavour
	}
	if in.IsAvailable != nil {
		pizza.IsAvailable = *in.IsAvailable
	}
	if in.Sizes != nil {
		pizza.Sizes = in.Sizes
	}
	if in.Toppings != nil {
		pizza.Toppings = in.Toppings
	}

	var oldImages []models.Image
	if newImages != nil {
		oldImages = pizza.Images
		pizza.Images = newImages
	}

	if err := s.pizzas.Update(ctx, pizza); err != nil {
		s.deleteAll(ctx, newImages)
		return nil, fmt.Errorf("failed to update pizza: %w", err)
	}

	s.deleteAll(ctx, oldImages)
	return pizza, nil
}

// ListPizzas returns the whole catalog, newest first.
func (s *CatalogService) ListPizzas(ctx context.Context) ([]models.Pizza, error) {
	return s.pizzas.FindAll(ctx)
}

// DeletePizza removes a catalog item and its stored images.
func (s *CatalogService) DeletePizza(ctx context.Context, callerID, pizzaID primitive.ObjectID) error {
	pizza, err := s.findPizza(ctx, pizzaID)
	if err != nil {
		return err
	}
	if err := s.requireCatalogRole(ctx, callerID); err != nil {
		return err
	}
	if err := s.pizzas.Delete(ctx, pizzaID); err != nil {
		if errors.Is(err, repository.ErrPizzaNotFound) {
			return ErrPizzaNotFound
		}
		return fmt.Errorf("failed to delete pizza: %w", err)
	}
	s.deleteAll(ctx, pizza.Images)
	return nil
}

func (s *CatalogService) requireCatalogRole(ctx context.Context, callerID primitive.ObjectID) error {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to find caller: %w", err)
	}
	if !caller.Role.CanManageCatalog() {
		return ErrForbidden
	}
	return nil
}

func (s *CatalogService) findPizza(ctx context.Context, id primitive.ObjectID) (*models.Pizza, error) {
	pizza, err := s.pizzas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPizzaNotFound) {
			return nil, ErrPizzaNotFound
		}
		return nil, fmt.Errorf("failed to find pizza: %w", err)
	}
	return pizza, nil
}

func (s *CatalogService) uploadAll(ctx context.Context, files []ImageFile) ([]models.Image, error) {
	images := make([]models.Image, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			img, err := storeImage(gctx, s.images, f)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.deleteAll(ctx, images)
		return nil, fmt.Errorf("failed to upload images: %w", err)
	}
	return images, nil
}

func (s *CatalogService) deleteAll(ctx context.Context, images []models.Image) {
	for _, img := range images {
		for _, key := range []string{img.Key, img.ThumbnailKey} {
			if key == "" {
				continue
			}
			if err := s.images.Delete(ctx, key); err != nil {
				s.logger.Warn("failed to delete stored image", zap.String("key", key), zap.Error(err))
			}
		}
	}
}
