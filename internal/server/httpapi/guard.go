package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/cookies"
	"github.com/umkmhub/marketplace/internal/server/identity"
)

// GuardState is the outcome of the customer session check.
type GuardState int

const (
	// StateLoading means the session could not be checked because the
	// identity backend failed.
	StateLoading GuardState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (g GuardState) String() string {
	switch g {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// resolveCustomer evaluates the session cookie once.
func (s *Server) resolveCustomer(c *gin.Context) (GuardState, *identity.Principal) {
	id := cookies.Value(c.Request, common.SessionCookieName)
	if id == "" {
		return StateUnauthenticated, nil
	}

	p, err := s.identity.Resolve(c.Request.Context(), id)
	if err == nil {
		return StateAuthenticated, p
	}
	if common.KindOf(err) == common.KindUpstream {
		s.logger.Error(c.Request.Context(), "customer session check failed", "error", err)
		return StateLoading, nil
	}
	return StateUnauthenticated, nil
}

// customerGuard gates customer-only pages. Loading renders a neutral
// placeholder without redirecting; unauthenticated visitors go to /login.
func (s *Server) customerGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, p := s.resolveCustomer(c)

		switch state {
		case StateAuthenticated:
			c.Set(principalKey, p)
			c.Next()
		case StateUnauthenticated:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		default:
			c.Header("Retry-After", "1")
			c.HTML(http.StatusServiceUnavailable, "checking.html", nil)
			c.Abort()
		}
	}
}

// optionalCustomer attaches the principal when a valid session is present
// and never blocks the request.
func (s *Server) optionalCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if state, p := s.resolveCustomer(c); state == StateAuthenticated {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

func principal(c *gin.Context) *identity.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*identity.Principal)
	return p
}
