package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/graphql"
)

func (s *Server) routes(schema gql.Schema) {
	r := s.engine

	r.Use(gin.Recovery(), s.accessLog(), s.adminPageGuard())

	r.NoRoute(func(c *gin.Context) {
		s.writeError(c, common.Errorf(common.KindNotFound, "not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		s.writeError(c, common.Errorf(common.KindMethodNotAllowed, "method not allowed"))
	})

	r.GET("/health", s.health)

	// Pages
	r.GET("/admin", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
	r.GET("/admin/login", s.adminLoginPage)
	r.GET("/admin/dashboard", s.adminDashboardPage)
	r.GET("/login", s.loginPage)
	r.GET("/dashboard", s.customerGuard(), s.dashboardPage)

	api := r.Group("/api")

	admin := api.Group("/admin")
	{
		admin.POST("/login", s.adminLogin)
		admin.POST("/logout", s.adminLogout)
		admin.GET("/csrf-token", s.csrfToken)
		admin.GET("/session", s.adminSession)
	}

	trainings := api.Group("/trainings")
	{
		trainings.GET("", s.listTrainings)
		trainings.POST("", s.requireAdmin(), s.createTraining)
		trainings.GET("/:id", s.getTraining)
		trainings.PUT("/:id", s.requireAdmin(), s.updateTraining)
		trainings.DELETE("/:id", s.requireAdmin(), s.deleteTraining)
	}

	produk := api.Group("/produk", s.optionalCustomer())
	{
		produk.GET("", s.listProducts)
		produk.POST("", s.createProduct)
		produk.GET("/:id", s.getProduct)
		produk.PUT("/:id", s.updateProduct)
		produk.DELETE("/:id", s.deleteProduct)
		produk.GET("/:id/image", s.productImage)
	}

	reviews := api.Group("/reviews", s.optionalCustomer())
	{
		reviews.GET("", s.listReviews)
		reviews.POST("", s.createReview)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.customerLogin)
		auth.POST("/logout", s.customerLogout)
		auth.GET("/me", s.me)
		auth.GET("/google/login", s.googleLogin)
		auth.GET("/google/callback", s.googleCallback)
	}

	api.POST("/graphql", graphql.Handler(schema))
}
