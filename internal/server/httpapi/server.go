// Package httpapi serves the marketplace pages and JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/config"
	"github.com/umkmhub/marketplace/internal/server/cookies"
	"github.com/umkmhub/marketplace/internal/server/identity"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// GoogleProvider is the federated sign-in flow; google.Provider implements
// it.
type GoogleProvider interface {
	AuthCodeURL(state, codeChallenge string) string
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*models.FederatedIdentity, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer composes. Google may be nil,
// which disables federated sign-in.
type Deps struct {
	Config    *config.Config
	Logger    logging.Logger
	Admin     *services.AdminService
	Products  *services.ProductService
	Trainings *services.TrainingService
	Reviews   *services.ReviewService
	Identity  *identity.Service
	Google    GoogleProvider
	GraphQL   gql.Schema
	Store     Pinger
}

type Server struct {
	address   string
	engine    *gin.Engine
	logger    logging.Logger
	cfg       *config.Config
	admin     *services.AdminService
	products  *services.ProductService
	trainings *services.TrainingService
	reviews   *services.ReviewService
	identity  *identity.Service
	google    GoogleProvider
	store     Pinger
}

func NewServer(d Deps) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		address:   d.Config.HTTPAddr,
		logger:    d.Logger.With("module", "http_server"),
		cfg:       d.Config,
		admin:     d.Admin,
		products:  d.Products,
		trainings: d.Trainings,
		reviews:   d.Reviews,
		identity:  d.Identity,
		google:    d.Google,
		store:     d.Store,
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(tmpl)
	s.engine = r
	s.routes(d.GraphQL)

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// cookieOptions are used for the admin and CSRF cookies (SameSite=Strict).
func (s *Server) cookieOptions() cookies.Options {
	return cookies.Options{Secure: s.cfg.SecureCookies(), SameSite: http.SameSiteStrictMode}
}

// laxCookieOptions are used for cookies that must survive the redirect
// back from an identity provider.
func (s *Server) laxCookieOptions() cookies.Options {
	return s.cookieOptions().WithSameSite(http.SameSiteLaxMode)
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles requests on lis until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
