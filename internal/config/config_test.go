package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("SESSION_SECRET", "keyboard cat")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, StorageMongo, cfg.StorageType)
	assert.Equal(t, StorageRedis, cfg.SessionStore)
	assert.Equal(t, "boardgames", cfg.MongoDatabase)
	assert.Equal(t, 14*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.CookieMaxAge)
	assert.Equal(t, "connect.sid", cfg.SessionCookie)
	assert.Equal(t, "/secrets", cfg.LandingPath)
	assert.Equal(t, "/auth/failure", cfg.AuthFailurePath)
	assert.Equal(t, "http://localhost:8080/auth/google/callback", cfg.GoogleCallbackURL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.CookieSecure())
	assert.Equal(t, http.SameSiteLaxMode, cfg.CookieSameSite())
	assert.True(t, cfg.NeedsMongo())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.NotContains(t, err.Error(), "GOOGLE_CLIENT_SECRET")
}

func TestLoad_Production(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("STORAGE_TYPE", StorageMemory)
	t.Setenv("SESSION_STORE", StorageRedis)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://games.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.CookieSecure())
	assert.Equal(t, http.SameSiteNoneMode, cfg.CookieSameSite())
	assert.False(t, cfg.NeedsMongo())
	assert.Equal(t, []string{"https://games.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_CookieSecureOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.CookieSecure())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORAGE_TYPE", "postgres"},
		{"SESSION_STORE", "memory"},
		{"LOG_LEVEL", "loud"},
		{"SESSION_TTL", "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Durations(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
