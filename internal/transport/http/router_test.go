package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nnvvee96/planora.ai-sub005/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() http.Handler {
	cfg := &config.Config{
		AllowedOrigins:    []string{"*"},
		DeletionGraceDays: 30,
	}
	return NewRouter(cfg, &Deps{})
}

func TestRouter_HealthCheck(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pong")
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodOptions, "/v1/signup", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Client-Info")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/v1/does-not-exist", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
