package repository

import (
	"context"
	"fmt"
	"time"

	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/infrastructure/repository/entity"
	"boardgame-catalog-api/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionCollection is the collection holding login sessions
const SessionCollection = "sessions"

// MongoSessionRepository implements SessionRepository using MongoDB.
// Documents expire through a TTL index on expiresAt.
type MongoSessionRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoSessionRepository creates a new MongoDB session repository
func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{
		collection: db.Collection(SessionCollection),
		now:        time.Now,
	}
}

// EnsureIndexes creates the TTL index that lets MongoDB reap expired sessions
func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expiresAt_ttl"),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create session ttl index: %w", err)
	}
	return nil
}

// Create stores a new session
func (r *MongoSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	doc := entity.MongoSessionDocFromDomain(session)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = r.now()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a live session by id. The TTL monitor runs periodically, so expiry is also checked here.
func (r *MongoSessionRepository) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	var doc entity.MongoSessionDoc
	filter := bson.M{
		"_id":       sessionID,
		"expiresAt": bson.M{"$gt": r.now()},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete removes a session; deleting an unknown id is not an error
func (r *MongoSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ ports.SessionRepository = (*MongoSessionRepository)(nil)
