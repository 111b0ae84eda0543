package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/cookies"
	"github.com/umkmhub/marketplace/internal/server/csrf"
)

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// adminLogin sets the auth_token cookie on success. The token itself is
// never part of the response body.
func (s *Server) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badJSON())
		return
	}

	sess, err := s.admin.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	cookies.Set(c.Writer, common.AdminTokenCookieName, sess.Token, s.admin.Validity(), s.cookieOptions())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "login successful"})
}

func (s *Server) adminLogout(c *gin.Context) {
	cookies.Clear(c.Writer, common.AdminTokenCookieName, s.cookieOptions())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logout successful"})
}

func (s *Server) csrfToken(c *gin.Context) {
	token, err := csrf.Issue(c.Writer, s.cookieOptions())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

// adminSession reports whether the browser holds a valid admin session,
// derived from the verified cookie only.
func (s *Server) adminSession(c *gin.Context) {
	claims, err := s.admin.Verify(cookies.Value(c.Request, common.AdminTokenCookieName))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      claims.Username,
		"expiresAt":     claims.ExpiresAt.Time,
	})
}
