package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/services"
)

func (s *Server) listReviews(c *gin.Context) {
	items, err := s.reviews.ListByProduct(c.Request.Context(), c.Query("productId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if items == nil {
		items = []*models.Review{}
	}
	c.JSON(http.StatusOK, items)
}

// createReview takes the author from the customer session when there is one.
func (s *Server) createReview(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, badJSON())
		return
	}
	if p := principal(c); p != nil {
		in.UserID = p.CustomerID
		in.UserName = p.DisplayName
	}

	r, err := s.reviews.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
