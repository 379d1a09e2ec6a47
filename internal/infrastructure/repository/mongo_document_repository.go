package repository

import (
	"context"
	"fmt"

	"boardgame-catalog-api/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDocumentRepository implements DocumentRepository over one MongoDB collection
type MongoDocumentRepository[T any] struct {
	collection *mongo.Collection
}

// NewMongoDocumentRepository creates a repository for the named collection
func NewMongoDocumentRepository[T any](db *mongo.Database, collection string) ports.DocumentRepository[T] {
	return &MongoDocumentRepository[T]{
		collection: db.Collection(collection),
	}
}

// FindAll retrieves every document in the collection
func (r *MongoDocumentRepository[T]) FindAll(ctx context.Context) ([]*T, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	records := []*T{}
	for cursor.Next(ctx) {
		record := new(T)
		if err := cursor.Decode(record); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", r.collection.Name(), err)
		}
		records = append(records, record)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return records, nil
}

// FindByID retrieves a document by its object id
func (r *MongoDocumentRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	record := new(T)
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s document: %w", r.collection.Name(), err)
	}

	return record, nil
}

// Insert stores a new document and returns its generated id
func (r *MongoDocumentRepository[T]) Insert(ctx context.Context, fields map[string]any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	doc := bson.M{"_id": id}
	for k, v := range fields {
		doc[k] = v
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert %s document: %w", r.collection.Name(), err)
	}

	return id, nil
}

// Update sets the supplied fields on the document
func (r *MongoDocumentRepository[T]) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error) {
	update := bson.M{"$set": bson.M(fields)}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update %s document: %w", r.collection.Name(), err)
	}

	return result.MatchedCount > 0, nil
}

// Delete removes the document
func (r *MongoDocumentRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s document: %w", r.collection.Name(), err)
	}

	return result.DeletedCount > 0, nil
}
