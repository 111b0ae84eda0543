package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/server/config"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := newTestEnv(t, func(_ *config.Config, d *Deps) { d.Store = downStore{} })
	w = down.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"not found"}`, w.Body.String())
}

func TestGraphQL_SearchProducts(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Keripik Tempe", "Batik Tulis"} {
		body := productBody()
		body["name"] = name
		w := env.do(http.MethodPost, "/api/produk", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.do(http.MethodPost, "/api/graphql", map[string]string{
		"query": `{ searchProducts(term: "tempe") { name shopName } }`,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"searchProducts":[{"name":"Keripik Tempe","shopName":"Dapur Bu Sri"}]}}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/graphql", map[string]string{"query": `{ allProducts { name } }`})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Batik Tulis")

	w = env.do(http.MethodPost, "/api/graphql", `{"query": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/graphql", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServe_GracefulStop(t *testing.T) {
	env := newTestEnv(t)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.srv.Serve(ctx, lis) }()

	url := fmt.Sprintf("http://%s/health", lis.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
