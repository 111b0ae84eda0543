package products

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/models"
)

// MemoryRepository keeps products in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Product
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Product)}
}

func (r *MemoryRepository) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = uuid.NewString()
	r.items[p.ID] = *p
	r.order = append(r.order, p.ID)

	out := *p
	return &out, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Product, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.items[r.order[i]]
		result = append(result, &p)
	}
	return result, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ShopName != nil {
		p.ShopName = *patch.ShopName
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.ImageKey != nil {
		p.ImageKey = *patch.ImageKey
	}
	r.items[id] = p

	return &p, nil
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
