package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/imagestore"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
	"github.com/umkmhub/marketplace/internal/server/sanitize"
)

// ImageStore is the subset of imagestore.Store used for product pictures.
type ImageStore interface {
	Enabled() bool
	Put(ctx context.Context, dataURL string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// ProductInput is a create request. Price accepts a number or a numeric
// string.
type ProductInput struct {
	Name        string        `json:"name"`
	Price       models.Number `json:"price"`
	Description string        `json:"description"`
	ShopName    string        `json:"shopName"`
	ImageURL    string        `json:"imageUrl"`
	OwnerID     string        `json:"ownerId"`
}

// ProductUpdate is a partial update; absent fields are left unchanged.
type ProductUpdate struct {
	Name        *string        `json:"name"`
	Price       *models.Number `json:"price"`
	Description *string        `json:"description"`
	ShopName    *string        `json:"shopName"`
	ImageURL    *string        `json:"imageUrl"`
}

type ProductService struct {
	repomanager repomanager.RepositoryManager
	images      ImageStore
	logger      logging.Logger
}

func NewProductService(m repomanager.RepositoryManager, images ImageStore, logger logging.Logger) *ProductService {
	return &ProductService{
		repomanager: m,
		images:      images,
		logger:      logger.With("module", "products"),
	}
}

// ImagePath is where a product with an offloaded picture serves it.
func ImagePath(id string) string {
	return "/api/produk/" + id + "/image"
}

func (s *ProductService) present(p *models.Product) *models.Product {
	if p.ImageKey != "" {
		p.ImageURL = ImagePath(p.ID)
	}
	return p
}

func (s *ProductService) offload(ctx context.Context, imageURL string) (url, key string, err error) {
	if !s.images.Enabled() || !imagestore.IsDataURL(imageURL) {
		return imageURL, "", nil
	}
	key, err = s.images.Put(ctx, imageURL)
	if errors.Is(err, imagestore.ErrNotDataURL) {
		return "", "", common.Errorf(common.KindValidation, "imageUrl is not a valid base64 data URL")
	}
	if err != nil {
		return "", "", common.Wrap(common.KindUpstream, "store product image", err)
	}
	return "", key, nil
}

// Create validates and sanitizes a new listing. Name, price, description,
// owner and shop name are required; a zero price counts as missing.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:        sanitize.Text(in.Name),
		Price:       in.Price.Value,
		Description: sanitize.Text(in.Description),
		ShopName:    sanitize.Text(in.ShopName),
		OwnerID:     strings.TrimSpace(in.OwnerID),
	}

	if p.Name == "" || !in.Price.Set || p.Price == 0 || p.Description == "" || p.OwnerID == "" || p.ShopName == "" {
		return nil, common.Errorf(common.KindValidation, "incomplete product data")
	}
	if err := checkPrice(p.Price); err != nil {
		return nil, err
	}

	var err error
	p.ImageURL, p.ImageKey, err = s.offload(ctx, in.ImageURL)
	if err != nil {
		return nil, err
	}

	created, err := s.repomanager.Products().Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "product created", "product_id", created.ID, "owner_id", created.OwnerID)
	return s.present(created), nil
}

func checkPrice(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return common.Errorf(common.KindValidation, "price must be a non-negative number")
	}
	return nil
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	items, err := s.repomanager.Products().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range items {
		s.present(p)
	}
	return items, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.repomanager.Products().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.present(p), nil
}

// Update applies a partial update and returns the stored result. Text
// fields are sanitized the same way as on create.
func (s *ProductService) Update(ctx context.Context, id string, in ProductUpdate) (*models.Product, error) {
	patch := models.ProductPatch{
		Name:        sanitize.Optional(in.Name),
		Description: sanitize.Optional(in.Description),
		ShopName:    sanitize.Optional(in.ShopName),
	}

	if in.Price != nil && in.Price.Set {
		if err := checkPrice(in.Price.Value); err != nil {
			return nil, err
		}
		v := in.Price.Value
		patch.Price = &v
	}

	if in.ImageURL != nil {
		url, key, err := s.offload(ctx, *in.ImageURL)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &url
		patch.ImageKey = &key
	}

	if patch.Empty() {
		return s.Get(ctx, id)
	}

	p, err := s.repomanager.Products().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return s.present(p), nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Products().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "product deleted", "product_id", id)
	return nil
}

// ImageURL returns where the product's picture can be downloaded: a
// presigned object-storage URL or the stored http(s) URL.
func (s *ProductService) ImageURL(ctx context.Context, id string) (string, error) {
	p, err := s.repomanager.Products().Get(ctx, id)
	if err != nil {
		return "", err
	}

	if p.ImageKey != "" && s.images.Enabled() {
		u, err := s.images.PresignGet(ctx, p.ImageKey)
		if err != nil {
			return "", common.Wrap(common.KindUpstream, "presign product image", err)
		}
		return u, nil
	}
	if strings.HasPrefix(p.ImageURL, "http://") || strings.HasPrefix(p.ImageURL, "https://") {
		return p.ImageURL, nil
	}
	return "", common.Errorf(common.KindNotFound, "product has no stored image")
}

// Search matches term case-insensitively against name, shop name and
// description. An empty term matches nothing.
func (s *ProductService) Search(ctx context.Context, term string) ([]*models.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []*models.Product{}, nil
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.ShopName), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out, nil
}
