package entity

import (
	"time"

	"boardgame-catalog-api/internal/domain"
)

// MongoSessionDoc represents a login session in MongoDB
type MongoSessionDoc struct {
	ID        string            `bson:"_id"`
	Identity  *MongoIdentityDoc `bson:"identity,omitempty"`
	CreatedAt time.Time         `bson:"createdAt"`
	ExpiresAt time.Time         `bson:"expiresAt"`
}

// MongoIdentityDoc is the serialized identity stored inside a session
type MongoIdentityDoc struct {
	ProviderID  string   `bson:"providerId"`
	DisplayName string   `bson:"displayName"`
	Emails      []string `bson:"emails"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	session := &domain.Session{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}
	if d.Identity != nil {
		session.Identity = &domain.Identity{
			ProviderID:  d.Identity.ProviderID,
			DisplayName: d.Identity.DisplayName,
			Emails:      d.Identity.Emails,
		}
	}
	return session
}

// MongoSessionDocFromDomain converts a domain entity to a MongoDB document
func MongoSessionDocFromDomain(session *domain.Session) *MongoSessionDoc {
	doc := &MongoSessionDoc{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if session.Identity != nil {
		doc.Identity = &MongoIdentityDoc{
			ProviderID:  session.Identity.ProviderID,
			DisplayName: session.Identity.DisplayName,
			Emails:      session.Identity.Emails,
		}
	}
	return doc
}
