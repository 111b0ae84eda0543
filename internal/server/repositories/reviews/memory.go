package reviews

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umkmhub/marketplace/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Review
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, rv *models.Review) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv.ID = uuid.NewString()
	rv.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *rv)

	out := *rv
	return &out, nil
}

func (r *MemoryRepository) ListByProduct(_ context.Context, productID string) ([]*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Review, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ProductID == productID {
			rv := r.items[i]
			result = append(result, &rv)
		}
	}
	return result, nil
}
