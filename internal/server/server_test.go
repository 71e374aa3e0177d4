package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/zenkitchen/backend/config"
	"github.com/pageza/zenkitchen/backend/internal/api"
	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/metrics"
	"github.com/pageza/zenkitchen/backend/internal/router"
	"github.com/pageza/zenkitchen/backend/internal/service"
	"github.com/pageza/zenkitchen/backend/internal/testhelpers"
)

func newTestServer(t *testing.T) *Server {
	db := testhelpers.SetupTestDB(t)
	store := database.NewGormStore(db)
	m := metrics.New()

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  "test-secret",
	}

	return NewServer(cfg, router.Dependencies{
		Services: api.Services{
			Auth:      service.NewAuthService(cfg.JWTSecret, time.Hour),
			Inventory: service.NewInventoryService(store, m),
			Recipes:   service.NewRecipeService(store),
		},
		DB:      db,
		Metrics: m,
	})
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t)
	require.NotNil(t, server)
	assert.Equal(t, "localhost:8080", server.http.Addr)

	// Test health check endpoint
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestServerExposesMetricsAndAPI(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/v1/auth/anonymous", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/items", nil)
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	engine := router.SetupRouter(router.Dependencies{DB: db})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestStopBeforeStart(t *testing.T) {
	assert.NoError(t, newTestServer(t).Stop(context.Background()))
}
