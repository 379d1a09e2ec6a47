package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Storage and session backends
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
	StorageRedis  = "redis"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the server needs at startup. It is read once and passed down explicitly.
type Config struct {
	// Server
	Port            string
	Environment     string
	LogLevel        zerolog.Level
	ShutdownTimeout time.Duration

	// Storage
	StorageType   string
	MongoURI      string
	MongoDatabase string

	// Sessions
	SessionStore    string
	RedisURL        string
	RedisKeyPrefix  string
	SessionSecret   string
	SessionTTL      time.Duration
	SessionCookie   string
	CookieMaxAge    time.Duration
	LandingPath     string
	AuthFailurePath string

	// Cookie
	cookieSecure bool

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	OAuthAuthURL       string
	OAuthTokenURL      string
	OAuthUserInfoURL   string

	// CORS
	CORSAllowedOrigins []string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.GoogleClientID = required("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = required("GOOGLE_CLIENT_SECRET")
	cfg.SessionSecret = required("SESSION_SECRET")

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.Port = getEnvString("PORT", "8080")
	cfg.Environment = getEnvString("APP_ENV", EnvDevelopment)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	level, err := zerolog.ParseLevel(getEnvString("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.StorageType = getEnvString("STORAGE_TYPE", StorageMongo)
	cfg.MongoURI = getEnvString("MONGODB_URI", "mongodb://localhost:27017")
	cfg.MongoDatabase = getEnvString("MONGODB_DATABASE", "boardgames")

	cfg.SessionStore = getEnvString("SESSION_STORE", StorageRedis)
	cfg.RedisURL = getEnvString("REDIS_URL", "redis://localhost:6379/0")
	cfg.RedisKeyPrefix = getEnvString("REDIS_KEY_PREFIX", "boardgames")
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", 14*24*time.Hour)
	cfg.SessionCookie = getEnvString("SESSION_COOKIE_NAME", "connect.sid")
	cfg.CookieMaxAge = getEnvDuration("SESSION_COOKIE_MAX_AGE", 7*24*time.Hour)
	cfg.cookieSecure = getEnvBool("COOKIE_SECURE", cfg.Environment == EnvProduction)
	cfg.LandingPath = getEnvString("AUTH_LANDING_PATH", "/secrets")
	cfg.AuthFailurePath = getEnvString("AUTH_FAILURE_PATH", "/auth/failure")

	cfg.GoogleCallbackURL = getEnvString("GOOGLE_CALLBACK_URL", "http://localhost:"+cfg.Port+"/auth/google/callback")
	cfg.OAuthAuthURL = os.Getenv("OAUTH_AUTH_URL")
	cfg.OAuthTokenURL = os.Getenv("OAUTH_TOKEN_URL")
	cfg.OAuthUserInfoURL = os.Getenv("OAUTH_USERINFO_URL")

	cfg.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageType {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: want %s or %s", c.StorageType, StorageMongo, StorageMemory)
	}
	switch c.SessionStore {
	case StorageRedis, StorageMongo:
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: want %s or %s", c.SessionStore, StorageRedis, StorageMongo)
	}
	if c.SessionTTL <= 0 || c.CookieMaxAge <= 0 {
		return fmt.Errorf("session lifetimes must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// IsDevelopment reports whether error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// CookieSecure reports whether cookies need the Secure flag. Defaults to production mode.
func (c *Config) CookieSecure() bool {
	return c.cookieSecure
}

// CookieSameSite returns the SameSite policy for the session cookie.
// Production serves the API cross-site behind a proxy, so it needs None.
func (c *Config) CookieSameSite() http.SameSite {
	if c.IsProduction() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// NeedsMongo reports whether any backend is MongoDB
func (c *Config) NeedsMongo() bool {
	return c.StorageType == StorageMongo || c.SessionStore == StorageMongo
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
