package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/cookies"
	"github.com/umkmhub/marketplace/internal/server/identity"
	"github.com/umkmhub/marketplace/internal/server/identity/google"
	"github.com/umkmhub/marketplace/internal/server/identity/session"
)

const oauthCookieTTL = 5 * time.Minute

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) setSessionCookie(c *gin.Context, sess *session.Session) {
	cookies.Set(c.Writer, common.SessionCookieName, sess.ID, time.Until(sess.ExpiresAt), s.laxCookieOptions())
}

func principalOf(sess *session.Session) identity.Principal {
	return identity.Principal{
		CustomerID:  sess.CustomerID,
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
	}
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.writeError(c, common.Errorf(common.KindValidation, "invalid email address"))
			return
		}
		s.writeError(c, badJSON())
		return
	}

	sess, err := s.identity.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, sess)
	c.JSON(http.StatusCreated, principalOf(sess))
}

func (s *Server) customerLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badJSON())
		return
	}

	sess, err := s.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, sess)
	c.JSON(http.StatusOK, principalOf(sess))
}

func (s *Server) customerLogout(c *gin.Context) {
	if err := s.identity.SignOut(c.Request.Context(), cookies.Value(c.Request, common.SessionCookieName)); err != nil {
		s.logger.Warn(c.Request.Context(), "session delete failed", "error", err)
	}
	cookies.Clear(c.Writer, common.SessionCookieName, s.laxCookieOptions())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) me(c *gin.Context) {
	p, err := s.identity.Resolve(c.Request.Context(), cookies.Value(c.Request, common.SessionCookieName))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) googleLogin(c *gin.Context) {
	if s.google == nil {
		s.writeError(c, common.Errorf(common.KindNotFound, "federated sign-in is not configured"))
		return
	}

	state, err := google.NewState()
	if err != nil {
		s.writeError(c, common.Wrap(common.KindUpstream, "oauth state", err))
		return
	}
	verifier, challenge, err := google.NewPKCE()
	if err != nil {
		s.writeError(c, common.Wrap(common.KindUpstream, "oauth pkce", err))
		return
	}

	opts := s.laxCookieOptions()
	cookies.Set(c.Writer, common.OAuthStateCookieName, state, oauthCookieTTL, opts)
	cookies.Set(c.Writer, common.PKCECookieName, verifier, oauthCookieTTL, opts)

	c.Redirect(http.StatusFound, s.google.AuthCodeURL(state, challenge))
}

// googleCallback finishes the code flow. Provider-side failures send the
// browser back to /login with an error marker.
func (s *Server) googleCallback(c *gin.Context) {
	if s.google == nil {
		s.writeError(c, common.Errorf(common.KindNotFound, "federated sign-in is not configured"))
		return
	}

	ctx := c.Request.Context()
	opts := s.laxCookieOptions()

	stored := cookies.Value(c.Request, common.OAuthStateCookieName)
	verifier := cookies.Value(c.Request, common.PKCECookieName)
	cookies.Clear(c.Writer, common.OAuthStateCookieName, opts)
	cookies.Clear(c.Writer, common.PKCECookieName, opts)

	state := c.Query("state")
	if state == "" || stored == "" || subtle.ConstantTimeCompare([]byte(state), []byte(stored)) != 1 {
		s.writeError(c, common.Errorf(common.KindValidation, "invalid oauth state"))
		return
	}

	code := c.Query("code")
	if c.Query("error") != "" || code == "" || verifier == "" {
		s.logger.Warn(ctx, "google sign-in aborted", "error", c.Query("error"))
		c.Redirect(http.StatusFound, "/login?error=oauth")
		return
	}

	ident, err := s.google.ExchangeCode(ctx, code, verifier)
	if err != nil {
		s.logger.Error(ctx, "google code exchange failed", "error", err)
		c.Redirect(http.StatusFound, "/login?error=oauth")
		return
	}

	sess, err := s.identity.SignInFederated(ctx, *ident)
	if err != nil {
		if common.KindOf(err) == common.KindUpstream {
			s.logger.Error(ctx, "federated sign-in failed", "error", err)
		}
		c.Redirect(http.StatusFound, "/login?error=oauth")
		return
	}

	s.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, "/dashboard")
}
