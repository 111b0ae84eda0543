// Package repomanager selects and owns the document store backend and hands
// out the per-collection repositories built on it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/umkmhub/marketplace/internal/server/config"
	"github.com/umkmhub/marketplace/internal/server/repositories/customers"
	"github.com/umkmhub/marketplace/internal/server/repositories/products"
	"github.com/umkmhub/marketplace/internal/server/repositories/reviews"
	"github.com/umkmhub/marketplace/internal/server/repositories/trainings"
)

type RepositoryManager interface {
	Products() products.Repository
	Trainings() trainings.Repository
	Reviews() reviews.Repository
	Customers() customers.Repository

	// RunMigrations brings the schema or indexes up to date.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New connects to the backend named by cfg.StoreBackend.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres, "":
		return NewPostgresRepositoryManager(cfg.DatabaseDSN)
	case config.BackendMongo:
		return NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
