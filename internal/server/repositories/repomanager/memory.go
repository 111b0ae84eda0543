package repomanager

import (
	"context"

	"github.com/umkmhub/marketplace/internal/server/repositories/customers"
	"github.com/umkmhub/marketplace/internal/server/repositories/products"
	"github.com/umkmhub/marketplace/internal/server/repositories/reviews"
	"github.com/umkmhub/marketplace/internal/server/repositories/trainings"
)

// InMemoryRepositoryManager keeps every collection in process memory. Data
// does not survive a restart.
type InMemoryRepositoryManager struct {
	products  *products.MemoryRepository
	trainings *trainings.MemoryRepository
	reviews   *reviews.MemoryRepository
	customers *customers.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		products:  products.NewMemoryRepository(),
		trainings: trainings.NewMemoryRepository(),
		reviews:   reviews.NewMemoryRepository(),
		customers: customers.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Products() products.Repository   { return m.products }
func (m *InMemoryRepositoryManager) Trainings() trainings.Repository { return m.trainings }
func (m *InMemoryRepositoryManager) Reviews() reviews.Repository     { return m.reviews }
func (m *InMemoryRepositoryManager) Customers() customers.Repository { return m.customers }

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *InMemoryRepositoryManager) Close(context.Context) error         { return nil }
