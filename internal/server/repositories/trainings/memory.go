package trainings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Training
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Training)}
}

func (r *MemoryRepository) Create(_ context.Context, t *models.Training) (*models.Training, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	r.items[t.ID] = *t
	r.order = append(r.order, t.ID)

	out := *t
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Training, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Training, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.items[r.order[i]]
		result = append(result, &t)
	}
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Training, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, patch models.TrainingPatch) (*models.Training, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	setIf(&t.Title, patch.Title)
	setIf(&t.Description, patch.Description)
	setIf(&t.Schedule, patch.Schedule)
	setIf(&t.Location, patch.Location)
	setIf(&t.Organizer, patch.Organizer)
	r.items[id] = t

	return &t, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
