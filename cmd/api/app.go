package main

import (
	"context"
	"fmt"
	"net/http"

	"boardgame-catalog-api/docs"
	"boardgame-catalog-api/internal/application"
	"boardgame-catalog-api/internal/config"
	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/infrastructure/api"
	"boardgame-catalog-api/internal/infrastructure/metrics"
	"boardgame-catalog-api/internal/infrastructure/middleware"
	"boardgame-catalog-api/internal/infrastructure/oauth"
	"boardgame-catalog-api/internal/infrastructure/pubsub"
	"boardgame-catalog-api/internal/infrastructure/repository"
	"boardgame-catalog-api/internal/infrastructure/repository/memory"
	"boardgame-catalog-api/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// app is the wired server and the connections it owns
type app struct {
	handler http.Handler
	feed    *pubsub.ChangeFeed
	mongo   *mongo.Client
	redis   *redis.Client
	logger  zerolog.Logger
}

// newApp connects the configured backends and builds the router
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{logger: logger}

	var db *mongo.Database
	if cfg.NeedsMongo() {
		client, err := repository.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.mongo = client
		db = client.Database(cfg.MongoDatabase)
		logger.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")
	}

	sessions, err := a.sessionRepository(ctx, cfg, db)
	if err != nil {
		a.close(context.Background())
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	a.feed = pubsub.NewChangeFeed(logger)
	a.feed.Consume(ctx, nil, func(event *domain.ChangeEvent) {
		collector.RecordChange(event)
		logger.Info().
			Str("kind", event.Kind).
			Str("action", string(event.Action)).
			Str("id", event.ResourceID).
			Strs("fields", event.Fields).
			Msg("Catalog changed")
	})

	games := application.NewResourceService(application.GameSchema, documentRepository[domain.Game](cfg, db, application.GameSchema), a.feed, logger)
	users := application.NewResourceService(application.UserSchema, documentRepository[domain.User](cfg, db, application.UserSchema), a.feed, logger)
	reviews := application.NewResourceService(application.ReviewSchema, documentRepository[domain.Review](cfg, db, application.ReviewSchema), a.feed, logger)

	provider := oauth.NewGoogleProvider(ctx, oauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleCallbackURL,
		AuthURL:      cfg.OAuthAuthURL,
		TokenURL:     cfg.OAuthTokenURL,
		UserInfoURL:  cfg.OAuthUserInfoURL,
	})
	auth := application.NewAuthService(provider, sessions, logger,
		application.WithSessionTTL(cfg.SessionTTL),
		application.WithTransitionRecorder(collector),
	)

	if err := docs.Register(docs.Build(docs.DefaultInfo,
		application.GameSchema,
		application.UserSchema,
		application.ReviewSchema,
	)); err != nil {
		a.close(context.Background())
		return nil, err
	}

	a.handler = api.NewRouter(api.RouterDeps{
		Games:   games,
		Users:   users,
		Reviews: reviews,
		Auth:    auth,
		Cookie: middleware.SessionCookie{
			Name:     cfg.SessionCookie,
			Secret:   []byte(cfg.SessionSecret),
			MaxAge:   cfg.CookieMaxAge,
			Secure:   cfg.CookieSecure(),
			SameSite: cfg.CookieSameSite(),
		},
		LandingPath:     cfg.LandingPath,
		AuthFailurePath: cfg.AuthFailurePath,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		ExposeErrors:    cfg.IsDevelopment(),
		Metrics:         collector,
		Gatherer:        registry,
		Logger:          logger,
	})

	return a, nil
}

func (a *app) sessionRepository(ctx context.Context, cfg *config.Config, db *mongo.Database) (ports.SessionRepository, error) {
	if cfg.SessionStore == config.StorageMongo {
		sessions := repository.NewMongoSessionRepository(db)
		if err := sessions.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		a.logger.Info().Msg("Sessions stored in MongoDB")
		return sessions, nil
	}

	client, err := repository.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.redis = client
	a.logger.Info().Str("prefix", cfg.RedisKeyPrefix).Msg("Sessions stored in Redis")
	return repository.NewRedisSessionRepository(client, cfg.RedisKeyPrefix), nil
}

func documentRepository[T any](cfg *config.Config, db *mongo.Database, schema application.Schema) ports.DocumentRepository[T] {
	if cfg.StorageType == config.StorageMemory {
		return memory.NewDocumentRepository[T]()
	}
	return repository.NewMongoDocumentRepository[T](db, schema.Collection)
}

// close releases the backend connections
func (a *app) close(ctx context.Context) error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to disconnect MongoDB: %w", err)
		}
	}
	return firstErr
}
