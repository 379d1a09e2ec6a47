package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boardgame-catalog-api/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestConfig(t *testing.T, redisAddr string) *config.Config {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("SESSION_SECRET", "keyboard cat")
	t.Setenv("STORAGE_TYPE", config.StorageMemory)
	t.Setenv("SESSION_STORE", config.StorageRedis)
	t.Setenv("REDIS_URL", "redis://"+redisAddr+"/0")

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewApp_MemoryStorage(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := loadTestConfig(t, mini.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.close(context.Background())

	assert.Nil(t, a.mongo)
	assert.NotNil(t, a.redis)
	assert.Equal(t, 1, a.feed.Subscribers())

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	a.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://accounts.google.com/"))

	w = httptest.NewRecorder()
	a.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := loadTestConfig(t, mini.Addr())
	mini.Close()

	_, err := newApp(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
