package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auth-session-svc/src/internal/config"
	"auth-session-svc/src/internal/dependency"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeps(t *testing.T) *dependency.Manager {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Configuration{
		App: config.Application{Name: "auth-session-svc", Version: "1.0.0", Timeout: 5},
		Server: config.ServerSettings{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Session: config.SessionSettings{
			Store:      "memory",
			CookieName: "auth_sid",
			TTLHours:   24,
		},
		Auth: config.AuthSettings{Username: "admin", Password: "12345"},
	}

	router := gin.New()
	router.Use(recovery())

	deps := dependency.NewDependencyManager(router, nil, nil, nil, cfg)
	SetupRoutes(deps)
	return deps
}

func TestUnknownRouteReturnsJSONEnvelope(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	w := httptest.NewRecorder()
	deps.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["error"])
}

func TestHealthEndpointWired(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	deps.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "none", body["session"])
}

func TestDetailedHealthWithoutInfra(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
	w := httptest.NewRecorder()
	deps.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "operational", body["status"])
	assert.Equal(t, "auth-session-svc", body["service"])

	components := body["components"].(map[string]any)
	assert.Equal(t, "memory", components["session-store"])
}

func TestLoginThroughFullRouter(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"12345"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	deps.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestCORSPreflight(t *testing.T) {
	deps := newTestDeps(t)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	deps.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
