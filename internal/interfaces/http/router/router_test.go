package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickai-api/internal/application/generation"
	"quickai-api/internal/config"
	"quickai-api/internal/interfaces/http/handler"
	"quickai-api/internal/interfaces/http/upload"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Observability.Metrics.Enabled = true
	cfg.Observability.Metrics.Path = "/metrics"

	svc := generation.NewService(generation.Dependencies{})
	r := NewWithDeps(cfg, RouterHandlers{
		Health:     handler.NewHealthHandler("test", nil),
		Generation: handler.NewGenerationHandler(svc, upload.NewStore(t.TempDir())),
		Creation:   handler.NewCreationHandler(nil),
	}, RouterDeps{})
	return r.Engine()
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t)
	for _, path := range []string{"/health", "/live", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestArticleWithoutCredential(t *testing.T) {
	e := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ai/generate-article", strings.NewReader(`{"prompt":"hello","length":500}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Missing GEMINI_API_KEY"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreationsRouteRegistered(t *testing.T) {
	e := newTestRouter(t)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/creations/published", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
