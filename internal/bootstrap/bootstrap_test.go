package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/config"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/repository"
)

type seedUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
}

func newSeedUserRepo() *seedUserRepo {
	return &seedUserRepo{byEmail: map[string]*models.User{}}
}

func (r *seedUserRepo) Create(ctx context.Context, u *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateKey
	}
	u.ID = primitive.NewObjectID()
	r.byEmail[u.Email] = u
	return nil
}

func (r *seedUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *seedUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *seedUserRepo) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *seedUserRepo) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return nil, nil
}

func (r *seedUserRepo) Update(ctx context.Context, u *models.User) error { return nil }

func seedApp(repo *seedUserRepo, ownerEmail string) *AppContext {
	logger := zap.NewNop()
	return &AppContext{
		Config: &config.Config{
			Owner:    config.OwnerCfg{Name: "Boss", Email: ownerEmail, Password: "owner-password"},
			Security: config.SecurityCfg{PasswordHashCost: bcrypt.MinCost},
		},
		Logger: logger,
		Sugar:  logger.Sugar(),
		Users:  repo,
	}
}

func TestSeedOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesVerifiedOwner", func(t *testing.T) {
		repo := newSeedUserRepo()
		require.NoError(t, seedApp(repo, "owner@example.com").SeedOwner(ctx))

		owner := repo.byEmail["owner@example.com"]
		require.NotNil(t, owner)
		assert.Equal(t, models.RoleOwner, owner.Role)
		assert.True(t, owner.IsAccountVerified)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte("owner-password")))
	})

	t.Run("NormalizesConfiguredEmail", func(t *testing.T) {
		repo := newSeedUserRepo()
		require.NoError(t, seedApp(repo, "  Owner@Example.COM ").SeedOwner(ctx))

		// stored lowercase, so the login path's lookup matches it
		require.NotNil(t, repo.byEmail["owner@example.com"])
	})

	t.Run("SecondRunIsNoOp", func(t *testing.T) {
		repo := newSeedUserRepo()
		app := seedApp(repo, "Owner@Example.com")
		require.NoError(t, app.SeedOwner(ctx))
		require.NoError(t, app.SeedOwner(ctx))
		assert.Len(t, repo.byEmail, 1)
	})

	t.Run("ConcurrentCreateTolerated", func(t *testing.T) {
		repo := newSeedUserRepo()
		repo.createErr = repository.ErrDuplicateKey
		assert.NoError(t, seedApp(repo, "owner@example.com").SeedOwner(ctx))
	})
}
