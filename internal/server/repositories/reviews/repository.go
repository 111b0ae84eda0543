// Package reviews stores product reviews.
package reviews

import (
	"context"

	"github.com/umkmhub/marketplace/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Review) (*models.Review, error)
	// ListByProduct returns the reviews whose ProductID equals productID,
	// newest first.
	ListByProduct(ctx context.Context, productID string) ([]*models.Review, error)
}
