package ports

import (
	"context"

	"boardgame-catalog-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentRepository defines persistence for one resource collection.
// Lookups return (nil, nil) when no document matches.
type DocumentRepository[T any] interface {
	FindAll(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Insert(ctx context.Context, fields map[string]any) (primitive.ObjectID, error)
	// Update sets the given fields and reports whether a document matched
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error)
	// Delete removes the document and reports whether one was deleted
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// SessionRepository defines persistence for login sessions
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// Get returns (nil, nil) for unknown or expired sessions
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
