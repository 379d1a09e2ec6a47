// Package memory provides an in-process document repository for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"boardgame-catalog-api/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentRepository keeps documents in insertion order and decodes them through BSON,
// so records come back exactly as the MongoDB repository would return them.
type DocumentRepository[T any] struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]bson.M
	order []primitive.ObjectID
}

// NewDocumentRepository creates an empty repository
func NewDocumentRepository[T any]() *DocumentRepository[T] {
	return &DocumentRepository[T]{
		docs: make(map[primitive.ObjectID]bson.M),
	}
}

// FindAll returns every document in insertion order
func (r *DocumentRepository[T]) FindAll(ctx context.Context) ([]*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*T, 0, len(r.order))
	for _, id := range r.order {
		record, err := decode[T](r.docs[id])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// FindByID returns the document or (nil, nil)
func (r *DocumentRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return decode[T](doc)
}

// Insert stores a copy of fields under a new object id
func (r *DocumentRepository[T]) Insert(ctx context.Context, fields map[string]any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	doc := bson.M{"_id": id}
	for k, v := range fields {
		doc[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[id] = doc
	r.order = append(r.order, id)
	return id, nil
}

// Update merges fields into the stored document
func (r *DocumentRepository[T]) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		doc[k] = v
	}
	return true, nil
}

// Delete removes the document
func (r *DocumentRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Len returns the number of stored documents
func (r *DocumentRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

func decode[T any](doc bson.M) (*T, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	record := new(T)
	if err := bson.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return record, nil
}

var _ ports.DocumentRepository[struct{}] = (*DocumentRepository[struct{}])(nil)
