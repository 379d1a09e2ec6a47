package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"boardgame-catalog-api/internal/domain"
	"boardgame-catalog-api/internal/ports"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResourceService implements list/get/create/update/delete for one resource kind
type ResourceService[T any] struct {
	schema    Schema
	repo      ports.DocumentRepository[T]
	publisher ports.ChangePublisher
	logger    zerolog.Logger
}

// NewResourceService creates a resource service. publisher may be nil.
func NewResourceService[T any](
	schema Schema,
	repo ports.DocumentRepository[T],
	publisher ports.ChangePublisher,
	logger zerolog.Logger,
) *ResourceService[T] {
	return &ResourceService[T]{
		schema:    schema,
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("resource", schema.Kind).Logger(),
	}
}

// Schema returns the field schema the service validates against
func (s *ResourceService[T]) Schema() Schema {
	return s.schema
}

// List returns every record; an empty collection yields an empty slice
func (s *ResourceService[T]) List(ctx context.Context) ([]*T, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.schema.Collection, err)
	}
	if records == nil {
		records = []*T{}
	}
	return records, nil
}

// Get returns the record with the given id
func (s *ResourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.schema.Kind, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%s %s: %w", s.schema.Kind, id, domain.ErrNotFound)
	}
	return record, nil
}

// Create validates and stores a new record, returning its id
func (s *ResourceService[T]) Create(ctx context.Context, input map[string]any) (string, error) {
	fields, err := s.schema.ValidateCreate(input)
	if err != nil {
		return "", err
	}

	oid, err := s.repo.Insert(ctx, fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to insert record")
		return "", fmt.Errorf("failed to create %s: %w", s.schema.Kind, err)
	}

	id := oid.Hex()
	s.logger.Info().Str("id", id).Msg("Created record")
	s.publish(domain.ChangeCreated, id, fields)
	return id, nil
}

// Update applies the supplied fields to an existing record
func (s *ResourceService[T]) Update(ctx context.Context, id string, input map[string]any) error {
	oid, err := s.parseID(id)
	if err != nil {
		return err
	}

	fields, err := s.schema.ValidatePatch(input)
	if err != nil {
		return err
	}

	matched, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to update record")
		return fmt.Errorf("failed to update %s: %w", s.schema.Kind, err)
	}
	if !matched {
		return fmt.Errorf("%s %s: %w", s.schema.Kind, id, domain.ErrNotFound)
	}

	s.logger.Info().Str("id", id).Strs("fields", sortedKeys(fields)).Msg("Updated record")
	s.publish(domain.ChangeUpdated, id, fields)
	return nil
}

// Delete removes a record. Deleting an absent record is ErrNotFound.
func (s *ResourceService[T]) Delete(ctx context.Context, id string) error {
	oid, err := s.parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("Failed to delete record")
		return fmt.Errorf("failed to delete %s: %w", s.schema.Kind, err)
	}
	if !deleted {
		return fmt.Errorf("%s %s: %w", s.schema.Kind, id, domain.ErrNotFound)
	}

	s.logger.Info().Str("id", id).Msg("Deleted record")
	s.publish(domain.ChangeDeleted, id, nil)
	return nil
}

func (s *ResourceService[T]) parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s id %q: %w", s.schema.Kind, id, domain.ErrInvalidID)
	}
	return oid, nil
}

func (s *ResourceService[T]) publish(action domain.ChangeAction, id string, fields map[string]any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(&domain.ChangeEvent{
		Kind:       s.schema.Kind,
		Action:     action,
		ResourceID: id,
		Fields:     sortedKeys(fields),
		At:         time.Now(),
	})
}

func sortedKeys(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
