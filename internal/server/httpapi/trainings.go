package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/umkmhub/marketplace/internal/server/csrf"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/services"
)

type csrfField struct {
	CSRFToken string `json:"csrfToken"`
}

// checkCSRF validates the body token before the rest of the body is bound,
// so every CSRF failure is a 403 whatever the other fields hold. The body is
// cached for the second bind.
func (s *Server) checkCSRF(c *gin.Context) bool {
	var f csrfField
	_ = c.ShouldBindBodyWith(&f, binding.JSON)
	if err := csrf.Validate(c.Request, f.CSRFToken); err != nil {
		s.writeError(c, err)
		return false
	}
	return true
}

func (s *Server) listTrainings(c *gin.Context) {
	items, err := s.trainings.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if items == nil {
		items = []*models.Training{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getTraining(c *gin.Context) {
	t, err := s.trainings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, notFound(err, "training"))
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTraining(c *gin.Context) {
	if !s.checkCSRF(c) {
		return
	}
	var in services.TrainingInput
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		s.writeError(c, badJSON())
		return
	}

	t, err := s.trainings.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTraining(c *gin.Context) {
	if !s.checkCSRF(c) {
		return
	}
	var in services.TrainingUpdate
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		s.writeError(c, badJSON())
		return
	}

	t, err := s.trainings.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, notFound(err, "training"))
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTraining(c *gin.Context) {
	if err := s.trainings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, notFound(err, "training"))
		return
	}
	c.Status(http.StatusNoContent)
}
