package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
)

type catalogFixture struct {
	svc    *CatalogService
	pizzas *fakePizzaRepo
	users  *fakeUserRepo
	store  *fakeImageStore
	admin  primitive.ObjectID
	user   primitive.ObjectID
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	pizzas := newFakePizzaRepo()
	users := newFakeUserRepo()
	store := newFakeImageStore()

	admin := &models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, IsAccountVerified: true}
	require.NoError(t, users.Create(context.Background(), admin))
	user := &models.User{Name: "User", Email: "user@example.com", Role: models.RoleUser, IsAccountVerified: true}
	require.NoError(t, users.Create(context.Background(), user))

	return &catalogFixture{
		svc:    NewCatalogService(pizzas, users, store, zap.NewNop()),
		pizzas: pizzas,
		users:  users,
		store:  store,
		admin:  admin.ID,
		user:   user.ID,
	}
}

func margherita(images ...ImageFile) CreatePizzaInput {
	if len(images) == 0 {
		images = []ImageFile{{Filename: "margherita.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}}
	}
	return CreatePizzaInput{
		Name:        "Margherita",
		Description: "Tomato, mozzarella, basil",
		BasePrice:   8.5,
		Flavour:     "Classic",
		Sizes:       []models.PizzaSize{{Name: "Small", ExtraPrice: 0}, {Name: "Large", ExtraPrice: 3}},
		Toppings:    []models.PizzaTopping{{Name: "Olives", Price: 1.5}},
		Images:      images,
	}
}

func TestCreatePizza(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newCatalogFixture(t)
		pizza, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)

		assert.Equal(t, "Margherita", pizza.Name)
		assert.True(t, pizza.IsAvailable)
		assert.Equal(t, f.admin, pizza.CreatedBy)
		require.Len(t, pizza.Images, 1)
		assert.NotEmpty(t, pizza.Images[0].URL)
		assert.Equal(t, 1, f.store.count())
	})

	t.Run("RegularUserForbidden", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.CreatePizza(ctx, f.user, margherita())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("UnknownCallerForbidden", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.CreatePizza(ctx, primitive.NewObjectID(), margherita())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("MissingImages", func(t *testing.T) {
		f := newCatalogFixture(t)
		in := margherita()
		in.Images = nil
		_, err := f.svc.CreatePizza(ctx, f.admin, in)
		assert.ErrorIs(t, err, ErrMissingImages)
	})

	t.Run("NegativeBasePrice", func(t *testing.T) {
		f := newCatalogFixture(t)
		in := margherita()
		in.BasePrice = -1
		_, err := f.svc.CreatePizza(ctx, f.admin, in)
		assert.True(t, IsValidation(err))
	})

	t.Run("FailedUploadRollsBackTheRest", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.store.failOn = "bad.jpg"
		in := margherita(
			ImageFile{Filename: "ok1.jpg", ContentType: "image/jpeg", Data: []byte("a")},
			ImageFile{Filename: "bad.jpg", ContentType: "image/jpeg", Data: []byte("b")},
			ImageFile{Filename: "ok2.jpg", ContentType: "image/jpeg", Data: []byte("c")},
		)
		_, err := f.svc.CreatePizza(ctx, f.admin, in)
		require.Error(t, err)
		// nothing persisted, no orphaned objects
		all, _ := f.pizzas.FindAll(ctx)
		assert.Empty(t, all)
		assert.Equal(t, 0, f.store.count())
	})

	t.Run("FailedPersistRemovesUploads", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.pizzas.createErr = assert.AnError
		_, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.Error(t, err)
		assert.Equal(t, 0, f.store.count())
	})

	t.Run("ExplicitlyUnavailable", func(t *testing.T) {
		f := newCatalogFixture(t)
		in := margherita()
		unavailable := false
		in.IsAvailable = &unavailable
		pizza, err := f.svc.CreatePizza(ctx, f.admin, in)
		require.NoError(t, err)
		assert.False(t, pizza.IsAvailable)
	})
}

func TestUpdatePizza(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdateLeavesOmittedFields", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)

		newPrice := 9.75
		updated, err := f.svc.UpdatePizza(ctx, f.admin, created.ID, UpdatePizzaInput{BasePrice: &newPrice})
		require.NoError(t, err)

		assert.Equal(t, 9.75, updated.BasePrice)
		assert.Equal(t, "Margherita", updated.Name)
		assert.Equal(t, "Classic", updated.Flavour)
		assert.Len(t, updated.Sizes, 2)
		assert.Equal(t, created.Images, updated.Images)
	})

	t.Run("NewImagesReplaceAndDeleteOld", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)
		oldKey := created.Images[0].Key

		updated, err := f.svc.UpdatePizza(ctx, f.admin, created.ID, UpdatePizzaInput{
			Images: []ImageFile{{Filename: "fresh.jpg", ContentType: "image/jpeg", Data: []byte("x")}},
		})
		require.NoError(t, err)
		require.Len(t, updated.Images, 1)
		assert.NotEqual(t, oldKey, updated.Images[0].Key)
		assert.Contains(t, f.store.deleted, oldKey)
		assert.Equal(t, 1, f.store.count())
	})

	t.Run("SizesReplacedWholesale", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)

		updated, err := f.svc.UpdatePizza(ctx, f.admin, created.ID, UpdatePizzaInput{
			Sizes: []models.PizzaSize{{Name: "Medium", ExtraPrice: 1.5}},
		})
		require.NoError(t, err)
		require.Len(t, updated.Sizes, 1)
		assert.Equal(t, "Medium", updated.Sizes[0].Name)
		// toppings untouched
		assert.Len(t, updated.Toppings, 1)
	})

	t.Run("UnknownPizza", func(t *testing.T) {
		f := newCatalogFixture(t)
		_, err := f.svc.UpdatePizza(ctx, f.admin, primitive.NewObjectID(), UpdatePizzaInput{})
		assert.ErrorIs(t, err, ErrPizzaNotFound)
	})

	t.Run("RegularUserForbidden", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)
		_, err = f.svc.UpdatePizza(ctx, f.user, created.ID, UpdatePizzaInput{})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("FailedPersistRemovesNewImagesKeepsOld", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)
		oldKey := created.Images[0].Key

		f.pizzas.updateErr = assert.AnError
		_, err = f.svc.UpdatePizza(ctx, f.admin, created.ID, UpdatePizzaInput{
			Images: []ImageFile{{Filename: "fresh.jpg", ContentType: "image/jpeg", Data: []byte("x")}},
		})
		require.Error(t, err)
		assert.NotContains(t, f.store.deleted, oldKey)
		assert.Equal(t, 1, f.store.count())
	})
}

func TestDeletePizza(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesPizzaAndImages", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)

		require.NoError(t, f.svc.DeletePizza(ctx, f.admin, created.ID))
		all, _ := f.pizzas.FindAll(ctx)
		assert.Empty(t, all)
		assert.Equal(t, 0, f.store.count())
	})

	t.Run("UnknownPizza", func(t *testing.T) {
		f := newCatalogFixture(t)
		err := f.svc.DeletePizza(ctx, f.admin, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrPizzaNotFound)
	})

	t.Run("RegularUserForbidden", func(t *testing.T) {
		f := newCatalogFixture(t)
		created, err := f.svc.CreatePizza(ctx, f.admin, margherita())
		require.NoError(t, err)
		assert.ErrorIs(t, f.svc.DeletePizza(ctx, f.user, created.ID), ErrForbidden)
	})
}
