package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/common"
)

// statusFor maps every error kind to its HTTP status.
func statusFor(kind common.Kind) int {
	switch kind {
	case common.KindConfiguration:
		return http.StatusInternalServerError
	case common.KindAuthentication:
		return http.StatusUnauthorized
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case common.KindUpstream:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// writeError answers with {"message": ...}. Upstream and configuration
// failures are logged with their cause; the client only sees a generic
// message.
func (s *Server) writeError(c *gin.Context, err error) {
	kind := common.KindOf(err)
	if kind == common.KindUpstream || kind == common.KindConfiguration {
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"kind", kind.String(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(statusFor(kind), gin.H{"message": common.MessageOf(err)})
}

// notFound names the missing document in the client message.
func notFound(err error, what string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.Errorf(common.KindNotFound, "%s not found", what)
	}
	return err
}

func badJSON() error {
	return common.Errorf(common.KindValidation, "invalid JSON body")
}
