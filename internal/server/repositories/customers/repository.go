// Package customers stores marketplace accounts and their links to
// federated identity providers.
package customers

import (
	"context"

	"github.com/umkmhub/marketplace/internal/server/models"
)

type Repository interface {
	// Create stores a new account. A second account with the same email,
	// compared case-insensitively, fails with common.ErrorAlreadyExists.
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// ResolveFederated returns the account linked to the identity, linking
	// an existing account with the same email or creating a new one when
	// no link exists yet.
	ResolveFederated(ctx context.Context, ident models.FederatedIdentity) (*models.Customer, error)
}
