package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionKeyPrefix namespaces session keys
const DefaultSessionKeyPrefix = "boardgames"

// RedisSessionRepository implements SessionRepository using Redis key expiry
type RedisSessionRepository struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedisSessionRepository creates a session repository on an existing client
func NewRedisSessionRepository(client *redis.Client, keyPrefix string) *RedisSessionRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultSessionKeyPrefix
	}
	return &RedisSessionRepository{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (r *RedisSessionRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:session:%s", r.keyPrefix, sessionID)
}

// Create stores the session with a TTL matching its expiry
func (r *RedisSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.client.Set(ctx, r.key(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get retrieves a session by id
func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Delete removes a session; deleting an unknown id is not an error
func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ ports.SessionRepository = (*RedisSessionRepository)(nil)
