// Package session stores opaque customer sessions keyed by a random id.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// Session points at a customer. Email and DisplayName are copied at sign-in
// so resolving a session does not touch the document store.
type Session struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Store persists sessions until they expire. Get returns
// common.ErrorNotFound for unknown or expired ids.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// GenerateID returns 32 random bytes encoded as unpadded base64url.
func GenerateID() (string, error) {
	const size = 32

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func validate(s Session, now time.Time) error {
	if s.ID == "" || s.CustomerID == "" {
		return fmt.Errorf("session: missing id or customer id")
	}
	if !s.ExpiresAt.After(now) {
		return fmt.Errorf("session: expires_at must be in the future")
	}
	return nil
}
