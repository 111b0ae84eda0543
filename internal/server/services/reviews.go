package services

import (
	"context"
	"math"
	"strings"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
	"github.com/umkmhub/marketplace/internal/server/sanitize"
)

type ReviewInput struct {
	ProductID string        `json:"productId"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	Rating    models.Number `json:"rating"`
	Comment   string        `json:"comment"`
}

type ReviewService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewReviewService(m repomanager.RepositoryManager, logger logging.Logger) *ReviewService {
	return &ReviewService{repomanager: m, logger: logger.With("module", "reviews")}
}

// Create stores a review. The rating must be a whole number from 1 to 5.
func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (*models.Review, error) {
	r := &models.Review{
		ProductID: strings.TrimSpace(in.ProductID),
		UserID:    strings.TrimSpace(in.UserID),
		UserName:  sanitize.Text(in.UserName),
		Comment:   sanitize.Text(in.Comment),
	}
	if r.ProductID == "" || r.UserID == "" || r.UserName == "" || r.Comment == "" || !in.Rating.Set {
		return nil, common.Errorf(common.KindValidation, "incomplete review data")
	}

	v := in.Rating.Value
	if v != math.Trunc(v) || v < 1 || v > 5 {
		return nil, common.Errorf(common.KindValidation, "rating must be an integer from 1 to 5")
	}
	r.Rating = int(v)

	created, err := s.repomanager.Reviews().Create(ctx, r)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "review created", "product_id", created.ProductID, "rating", created.Rating)
	return created, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]*models.Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, common.Errorf(common.KindValidation, "productId is required")
	}
	return s.repomanager.Reviews().ListByProduct(ctx, productID)
}
