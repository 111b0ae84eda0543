package models

import "time"

// Customer is a marketplace account. PasswordHash is empty for accounts
// that only ever signed in through a federated provider.
type Customer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FederatedIdentity is the verified subject returned by an external
// identity provider.
type FederatedIdentity struct {
	Provider       string
	ProviderUserID string
	Email          string
	EmailVerified  bool
	DisplayName    string
}
