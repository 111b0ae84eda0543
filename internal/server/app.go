// Package server wires the marketplace together: storage, sessions, identity
// providers, services and the HTTP and gRPC health listeners. Run blocks
// until the context is cancelled or a listener fails, then shuts everything
// down.
package server

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/config"
	"github.com/umkmhub/marketplace/internal/server/graphql"
	"github.com/umkmhub/marketplace/internal/server/httpapi"
	"github.com/umkmhub/marketplace/internal/server/identity"
	"github.com/umkmhub/marketplace/internal/server/identity/google"
	"github.com/umkmhub/marketplace/internal/server/identity/session"
	"github.com/umkmhub/marketplace/internal/server/imagestore"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
	"github.com/umkmhub/marketplace/internal/server/services"

	gs "github.com/umkmhub/marketplace/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	redis  *redis.Client
	http   *httpapi.Server
	health *gs.HealthServer
}

// NewApp connects to the configured store, applies migrations and builds
// both listeners. Federated sign-in, Redis sessions and object storage are
// each enabled only when their settings are present.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	app := &App{config: cfg, logger: logger, repos: repos}
	if err := app.build(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) build(ctx context.Context) error {
	cfg, logger := app.config, app.logger

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		sessions = session.NewRedisStore(app.redis)
		logger.Info(ctx, "customer sessions stored in redis", "address", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
		logger.Warn(ctx, "REDIS_ADDR not set, customer sessions kept in memory")
	}

	deps := httpapi.Deps{
		Config:    cfg,
		Logger:    logger,
		Admin:     services.NewAdminService(cfg, logger),
		Trainings: services.NewTrainingService(app.repos, logger),
		Reviews:   services.NewReviewService(app.repos, logger),
		Identity:  identity.NewService(app.repos.Customers(), sessions, cfg.CustomerSessionValidity, logger),
		Store:     app.repos,
	}

	if cfg.GoogleClientID != "" {
		redirect := cfg.GoogleRedirectURL
		if redirect == "" {
			redirect = strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/auth/google/callback"
		}
		provider, err := google.New(ctx, google.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  redirect,
		})
		if err != nil {
			return fmt.Errorf("google sign-in: %w", err)
		}
		deps.Google = provider
	}

	images := imagestore.New(imagestore.Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3RootUser,
		SecretKey:    cfg.S3RootPassword,
	})
	if !images.Enabled() {
		logger.Info(ctx, "S3_BUCKET not set, product images stay inline")
	}
	deps.Products = services.NewProductService(app.repos, images, logger)

	schema, err := graphql.NewSchema(deps.Products, logger)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}
	deps.GraphQL = schema

	if app.http, err = httpapi.NewServer(deps); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	app.health = gs.NewHealthServer(cfg.HealthAddrGRPC, app.repos, logger)

	return nil
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err)
		}
	}
	if err := app.repos.Close(ctx); err != nil {
		app.logger.Warn(ctx, "store close failed", "error", err)
	}
}

// Run serves until ctx is cancelled. A listener that fails stops the other
// one as well; its error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(name string, err error) {
		app.logger.Error(ctx, name+" stopped", "error", err)
		once.Do(func() { firstErr = err })
		cancelFunc()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			fail("http server", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.health.Run(ctx); err != nil {
			fail("grpc health server", err)
		}
	}()

	wg.Wait()
	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")

	return firstErr
}

// NewLogger builds the process logger from the configured level and format.
func NewLogger(cfg *config.Config) logging.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
}
