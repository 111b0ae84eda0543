package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/services"
)

func (s *Server) listProducts(c *gin.Context) {
	items, err := s.products.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if items == nil {
		items = []*models.Product{}
	}
	c.JSON(http.StatusOK, items)
}

// createProduct takes the owner from the customer session when there is one.
func (s *Server) createProduct(c *gin.Context) {
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, badJSON())
		return
	}
	if p := principal(c); p != nil {
		in.OwnerID = p.CustomerID
	}

	p, err := s.products.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "product"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// TODO: enforce ownership once vendors always carry a server-side session;
// update and delete currently trust the caller.
func (s *Server) updateProduct(c *gin.Context) {
	var in services.ProductUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, badJSON())
		return
	}

	p, err := s.products.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, notFound(err, "product"))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, notFound(err, "product"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) productImage(c *gin.Context) {
	u, err := s.products.ImageURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "product"))
		return
	}
	c.Redirect(http.StatusFound, u)
}
