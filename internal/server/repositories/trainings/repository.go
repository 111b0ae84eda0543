// Package trainings stores admin-managed training announcements.
package trainings

import (
	"context"

	"github.com/umkmhub/marketplace/internal/server/models"
)

// Repository is implemented by the Postgres, Mongo and in-memory stores.
// CreatedAt is assigned by the store.
type Repository interface {
	Create(ctx context.Context, t *models.Training) (*models.Training, error)
	List(ctx context.Context) ([]*models.Training, error)
	Get(ctx context.Context, id string) (*models.Training, error)
	Update(ctx context.Context, id string, patch models.TrainingPatch) (*models.Training, error)
	Delete(ctx context.Context, id string) error
}
