// Package products stores marketplace product listings.
package products

import (
	"context"

	"github.com/umkmhub/marketplace/internal/server/models"
)

// Repository is implemented by the Postgres, Mongo and in-memory stores.
// Get, Update and Delete return common.ErrorNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
