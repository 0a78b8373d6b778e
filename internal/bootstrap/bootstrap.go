package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/config"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/database"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/handlers"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/mailer"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/otp"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/repository"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/services"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/storage"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
)

type AppContext struct {
	Config  *config.Config
	Logger  *zap.Logger
	Sugar   *zap.SugaredLogger
	Mongo   *mongo.Client
	Redis   *redis.Client
	Tokens  *token.Manager
	Users   repository.UserRepository
	Handler *handlers.Handler
}

type CleanupFn func(context.Context)

func Init(configPath string) (*AppContext, CleanupFn, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	sugar := logger.Sugar()

	app := &AppContext{Config: cfg, Logger: logger, Sugar: sugar}
	sugar.Infof("Starting slice-stack backend in %s environment", cfg.App.Env)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout, sugar)
	if err != nil {
		return nil, nil, err
	}
	app.Mongo = mongoClient

	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.ConnectTimeout, sugar)
	if err != nil {
		return nil, nil, err
	}
	app.Redis = rdb

	brevoClient := mailer.NewClient(cfg.Brevo.APIKey, cfg.Brevo.FromEmail, cfg.Brevo.FromName)
	if !brevoClient.IsConfigured() {
		sugar.Warn("Brevo client not fully configured, transactional email will fail")
	}

	s3Store, err := storage.NewS3Store(context.Background(), cfg.S3.Region, cfg.S3.Bucket, cfg.S3.Folder)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init S3 store: %w", err)
	}

	app.Tokens = token.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTLMinutes,
		cfg.JWT.RefreshTTLDays,
	)

	userRepo := repository.NewMongoUserRepo(db)
	pizzaRepo := repository.NewMongoPizzaRepo(db)
	cartRepo := repository.NewMongoCartRepo(db)
	app.Users = userRepo

	otpSvc := otp.NewService(cfg.Security.OtpTTLMinutes)
	limiter := services.NewRedisRateLimiter(rdb, cfg.Security.OtpRateLimitPerEmailPerHour)

	authSvc := services.NewAuthService(userRepo, app.Tokens, otpSvc, brevoClient, limiter, s3Store, cfg.Security.PasswordHashCost, logger)
	catalogSvc := services.NewCatalogService(pizzaRepo, userRepo, s3Store, logger)
	cartSvc := services.NewCartService(cartRepo, pizzaRepo)

	app.Handler = handlers.NewHandler(authSvc, catalogSvc, cartSvc, app.Tokens, logger)

	return app, func(ctx context.Context) {
		if cerr := logger.Sync(); cerr != nil {
			log.Printf("Logger sync error: %v", cerr)
		}
		if cerr := mongoClient.Disconnect(ctx); cerr != nil {
			sugar.Errorf("MongoDB disconnect error: %v", cerr)
		}
		if cerr := rdb.Close(); cerr != nil {
			sugar.Errorf("Redis client close error: %v", cerr)
		}
	}, nil
}

// SeedOwner makes sure the single owner account exists before the listener
// starts. Lookup-then-create; the unique email index resolves concurrent
// startups, so a duplicate-key error means another instance won the race.
func (app *AppContext) SeedOwner(ctx context.Context) error {
	cfg := app.Config.Owner
	// same normalization the login path applies, or the owner could never
	// match its own record
	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	if _, err := app.Users.FindByEmail(ctx, email); err == nil {
		app.Sugar.Info("Owner already exists")
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to look up owner: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), app.Config.Security.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	owner := &models.User{
		Name:              cfg.Name,
		Email:             email,
		PasswordHash:      string(hashed),
		Role:              models.RoleOwner,
		IsAccountVerified: true,
	}
	if err := app.Users.Create(ctx, owner); err != nil {
		if repository.IsDuplicateKey(err) {
			app.Sugar.Info("Owner created concurrently by another instance")
			return nil
		}
		return fmt.Errorf("failed to create owner: %w", err)
	}

	app.Sugar.Infof("Owner %s has been created", owner.Name)
	return nil
}
