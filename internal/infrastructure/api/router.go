package api

import (
	"net/http"

	"boardgame-catalog-api/docs"
	"boardgame-catalog-api/internal/application"
	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/infrastructure/metrics"
	"boardgame-catalog-api/internal/infrastructure/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps holds everything the HTTP surface is built from
type RouterDeps struct {
	Games   *application.ResourceService[domain.Game]
	Users   *application.ResourceService[domain.User]
	Reviews *application.ResourceService[domain.Review]
	Auth    *application.AuthService

	Cookie          middleware.SessionCookie
	LandingPath     string
	AuthFailurePath string
	AllowedOrigins  []string
	ExposeErrors    bool

	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

// NewRouter builds the chi router serving the catalog, the auth handshake and the docs
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AuditLoggingMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger, deps.ExposeErrors))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	gate := middleware.RequireAuthenticated(deps.Auth, deps.Cookie, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Get("/swagger/doc.json", serveDocument(logger))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger.json", serveDocument(logger))
	r.Get("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})

	r.Route("/games", NewResourceHandler(deps.Games, deps.ExposeErrors, logger).Routes(gate))
	r.Route("/users", NewResourceHandler(deps.Users, deps.ExposeErrors, logger).Routes(gate))
	r.Route("/reviews", NewResourceHandler(deps.Reviews, deps.ExposeErrors, logger).Routes(gate))

	auth := NewAuthHandler(deps.Auth, deps.Cookie, deps.LandingPath, deps.AuthFailurePath, logger)
	r.Get("/login", auth.Login)
	r.Get("/auth/google/callback", auth.Callback)
	r.Get("/logout", auth.Logout)
	r.Get("/auth/failure", auth.Failure)
	r.With(middleware.LoadIdentity(deps.Auth, deps.Cookie, logger)).Get("/", auth.Status)
	r.With(gate).Get("/secrets", auth.Secrets)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed on "+r.URL.Path)
	})

	return r
}

func serveDocument(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := docs.JSON()
		if err != nil {
			logger.Error().Err(err).Msg("API document not registered")
			writeMessage(w, http.StatusServiceUnavailable, "API documentation unavailable.")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(doc)
	}
}
