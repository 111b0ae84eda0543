package httpapi

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umkmhub/marketplace/internal/server/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

func (s *Server) adminLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"SessionExpired": c.Query("error") == "session_expired",
	})
}

// adminDashboardPage only runs after adminPageGuard verified the cookie, so
// the username shown comes from the token.
func (s *Server) adminDashboardPage(c *gin.Context) {
	items, err := s.trainings.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	username := ""
	if claims := adminClaims(c); claims != nil {
		username = claims.Username
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Username":  username,
		"Trainings": items,
	})
}

func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"OAuthError":    c.Query("error") == "oauth",
		"GoogleEnabled": s.google != nil,
	})
}

// dashboardPage lists the signed-in vendor's own products.
func (s *Server) dashboardPage(c *gin.Context) {
	p := principal(c)

	all, err := s.products.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	own := make([]*models.Product, 0, len(all))
	for _, item := range all {
		if item.OwnerID == p.CustomerID {
			own = append(own, item)
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Customer": p,
		"Products": own,
	})
}
