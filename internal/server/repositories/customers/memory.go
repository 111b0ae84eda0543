package customers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.Customer
	byEmail map[string]string
	links   map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.Customer),
		byEmail: make(map[string]string),
		links:   make(map[string]string),
	}
}

func linkKey(provider, subject string) string {
	return provider + "|" + subject
}

func (r *MemoryRepository) createLocked(c models.Customer) (*models.Customer, error) {
	email := strings.ToLower(c.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	r.byID[c.ID] = c
	r.byEmail[email] = c.ID
	return &c, nil
}

func (r *MemoryRepository) Create(_ context.Context, c *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(*c)
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := r.byID[id]
	return &c, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) ResolveFederated(_ context.Context, ident models.FederatedIdentity) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := linkKey(ident.Provider, ident.ProviderUserID)
	if id, ok := r.links[key]; ok {
		c := r.byID[id]
		return &c, nil
	}

	if id, ok := r.byEmail[strings.ToLower(ident.Email)]; ok {
		r.links[key] = id
		c := r.byID[id]
		return &c, nil
	}

	c, err := r.createLocked(models.Customer{Email: ident.Email, DisplayName: ident.DisplayName})
	if err != nil {
		return nil, err
	}
	r.links[key] = c.ID
	return c, nil
}
