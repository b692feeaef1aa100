package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avclassify/internal/health"
	"github.com/vyrodovalexey/avclassify/internal/observability"
)

func newTestServer(config *Config) *Server {
	srv := New(config, observability.NopLogger())
	handler := NewClassifyHandler(testIdentity)
	checker := health.NewChecker("test")
	srv.RegisterRoutes(handler, checker)
	return srv
}

func TestServerDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.NotZero(t, cfg.ReadTimeout)
}

func TestServerServesClassify(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/classify",
		strings.NewReader(`{"data": ["1", "a"]}`))
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_success":true`)
}

func TestServerServesHealthEndpoints(t *testing.T) {
	srv := newTestServer(nil)

	for _, path := range []string{"/health", "/ready", "/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.Engine().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServerNoRoute(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not Found")
}

func TestServerEnforcesBodyLimit(t *testing.T) {
	srv := newTestServer(&Config{
		Port:               8080,
		MaxRequestBodySize: 64,
	})

	body := `{"data": ["` + strings.Repeat("a", 128) + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds 64 bytes")
}

func TestServerStopWhenNotRunning(t *testing.T) {
	srv := newTestServer(nil)

	require.NoError(t, srv.Stop(context.Background()))
	assert.False(t, srv.IsRunning())
}
