package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/config"
	"github.com/umkmhub/marketplace/internal/server/graphql"
	"github.com/umkmhub/marketplace/internal/server/identity"
	"github.com/umkmhub/marketplace/internal/server/identity/session"
	"github.com/umkmhub/marketplace/internal/server/imagestore"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
	"github.com/umkmhub/marketplace/internal/server/services"
)

const (
	testAdminUser = "admin"
	testAdminPass = "s3cret-pass"
)

type testEnv struct {
	srv   *Server
	h     http.Handler
	repos *repomanager.InMemoryRepositoryManager
	cfg   *config.Config
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = config.BackendMemory
	cfg.AdminUsername = testAdminUser
	cfg.AdminPassword = testAdminPass
	cfg.SecretKey = "signing-secret"
	return cfg
}

func newTestEnv(t *testing.T, mutate ...func(cfg *config.Config, d *Deps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	logger := logging.NewNop()
	repos := repomanager.NewInMemoryRepositoryManager()
	products := services.NewProductService(repos, imagestore.New(imagestore.Config{}), logger)

	schema, err := graphql.NewSchema(products, logger)
	require.NoError(t, err)

	d := Deps{
		Config:    cfg,
		Logger:    logger,
		Admin:     services.NewAdminService(cfg, logger),
		Products:  products,
		Trainings: services.NewTrainingService(repos, logger),
		Reviews:   services.NewReviewService(repos, logger),
		Identity:  identity.NewService(repos.Customers(), session.NewMemoryStore(), cfg.CustomerSessionValidity, logger),
		GraphQL:   schema,
		Store:     repos,
	}
	for _, m := range mutate {
		m(cfg, &d)
	}

	srv, err := NewServer(d)
	require.NoError(t, err)
	return &testEnv{srv: srv, h: srv.Handler(), repos: repos, cfg: cfg}
}

func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.h.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// loginAdmin returns the auth_token cookie of a successful admin login.
func (e *testEnv) loginAdmin(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.do(http.MethodPost, "/api/admin/login", map[string]string{"username": testAdminUser, "password": testAdminPass})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	c := cookieNamed(w, "auth_token")
	require.NotNil(t, c)
	return c
}

func (e *testEnv) issueCSRF(t *testing.T) (*http.Cookie, string) {
	t.Helper()
	w := e.do(http.MethodGet, "/api/admin/csrf-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	c := cookieNamed(w, "csrf_token")
	require.NotNil(t, c)
	return c, body["csrfToken"]
}

// registerCustomer returns the session_id cookie of a new account.
func (e *testEnv) registerCustomer(t *testing.T, email, name string) (*http.Cookie, identity.Principal) {
	t.Helper()
	w := e.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": "rahasia123", "displayName": name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := cookieNamed(w, "session_id")
	require.NotNil(t, c)
	return c, decode[identity.Principal](t, w)
}

type failingSessions struct{}

func (failingSessions) Create(context.Context, session.Session) error {
	return errors.New("redis down")
}

func (failingSessions) Get(context.Context, string) (*session.Session, error) {
	return nil, errors.New("redis down")
}

func (failingSessions) Delete(context.Context, string) error {
	return errors.New("redis down")
}

type fakeGoogle struct {
	ident *models.FederatedIdentity
	err   error
	codes []string
}

func (f *fakeGoogle) AuthCodeURL(state, challenge string) string {
	return "https://accounts.example.com/auth?state=" + state + "&code_challenge=" + challenge
}

func (f *fakeGoogle) ExchangeCode(_ context.Context, code, verifier string) (*models.FederatedIdentity, error) {
	f.codes = append(f.codes, code+"|"+verifier)
	if f.err != nil {
		return nil, f.err
	}
	return f.ident, nil
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }
