package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/auth"
	"github.com/umkmhub/marketplace/internal/server/cookies"
)

const (
	adminClaimsKey = "admin_claims"
	principalKey   = "principal"

	adminLoginPath = "/admin/login"
)

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// adminZone classifies a path: protected admin pages, the unprotected
// login page, or outside the admin area.
func adminZone(path string) (admin, protected bool) {
	if path != "/admin" && !strings.HasPrefix(path, "/admin/") {
		return false, false
	}
	return true, !strings.HasPrefix(path, adminLoginPath)
}

// adminPageGuard runs before routing for every request. Protected admin
// paths need a valid auth_token cookie; otherwise the browser is sent to the
// login page and no handler runs.
func (s *Server) adminPageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, protected := adminZone(c.Request.URL.Path); !protected {
			c.Next()
			return
		}

		token := cookies.Value(c.Request, common.AdminTokenCookieName)
		if token == "" {
			c.Redirect(http.StatusFound, adminLoginPath)
			c.Abort()
			return
		}

		claims, err := s.admin.Verify(token)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "admin session rejected",
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.Redirect(http.StatusFound, adminLoginPath+"?error=session_expired")
			c.Abort()
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// requireAdmin protects admin API writes. A missing or invalid session is
// forbidden; a server without admin configuration answers 500.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.admin.Verify(cookies.Value(c.Request, common.AdminTokenCookieName))
		if err != nil {
			if common.KindOf(err) == common.KindConfiguration {
				s.writeError(c, err)
				return
			}
			s.logger.Warn(c.Request.Context(), "admin api request rejected",
				"path", c.Request.URL.Path,
				"error", err,
			)
			s.writeError(c, common.Wrap(common.KindForbidden, "admin session required", err))
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

func adminClaims(c *gin.Context) *auth.AdminClaims {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.AdminClaims)
	return claims
}
