package services

import (
	"context"
	"errors"

	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/config"
	"github.com/umkmhub/marketplace/internal/server/imagestore"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/repositories/products"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
)

// --- helpers ---

var nop = logging.NewNop()

type fakeImages struct {
	enabled bool
	putKey  string
	putErr  error
	puts    []string
	url     string
	urlErr  error
}

func (f *fakeImages) Enabled() bool { return f.enabled }

func (f *fakeImages) Put(_ context.Context, dataURL string) (string, error) {
	f.puts = append(f.puts, dataURL)
	if f.putErr != nil {
		return "", f.putErr
	}
	return f.putKey, nil
}

func (f *fakeImages) PresignGet(_ context.Context, key string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return f.url + key, nil
}

var disabledImages = imagestore.New(imagestore.Config{})

// failingProducts fails every call with a driver-level error.
type failingProducts struct{ products.Repository }

var errDB = errors.New("db error: connection reset")

func (failingProducts) List(context.Context) ([]*models.Product, error) { return nil, errDB }
func (failingProducts) Create(context.Context, *models.Product) (*models.Product, error) {
	return nil, errDB
}

type failingManager struct {
	*repomanager.InMemoryRepositoryManager
}

func (failingManager) Products() products.Repository { return failingProducts{} }

func adminConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AdminUsername = "admin"
	cfg.AdminPassword = "s3cret-pass"
	cfg.SecretKey = "signing-secret"
	return cfg
}
