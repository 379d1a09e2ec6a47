package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"boardgame-catalog-api/internal/application"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// ResourceHandler serves the five CRUD routes of one resource kind
type ResourceHandler[T any] struct {
	service *application.ResourceService[T]
	schema  application.Schema
	errors  errorWriter
}

// NewResourceHandler creates a handler for service
func NewResourceHandler[T any](service *application.ResourceService[T], exposeDetail bool, logger zerolog.Logger) *ResourceHandler[T] {
	schema := service.Schema()
	return &ResourceHandler[T]{
		service: service,
		schema:  schema,
		errors: errorWriter{
			schema:       schema,
			exposeDetail: exposeDetail,
			logger:       logger.With().Str("resource", schema.Kind).Logger(),
		},
	}
}

// Routes mounts the handler. Reads are public; writes go through gate.
func (h *ResourceHandler[T]) Routes(gate func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(gate)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}
}

// List handles GET /{collection}
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.errors.write(w, r, err, "Fetching "+h.schema.Collection+" failed.")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /{collection}/{id}
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errors.write(w, r, err, "Fetching "+h.schema.Kind+" failed.")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /{collection}
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.errors.write(w, r, err, "Creating "+h.schema.Kind+" failed.")
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// Update handles PUT /{collection}/{id}
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
		h.errors.write(w, r, err, "Updating "+h.schema.Kind+" failed.")
		return
	}
	writeMessage(w, http.StatusOK, h.schema.Label+" updated successfully.")
}

// Delete handles DELETE /{collection}/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errors.write(w, r, err, "Deleting "+h.schema.Kind+" failed.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a JSON object. An empty body is an empty object; numbers stay json.Number
// so the schema can coerce them.
func (h *ResourceHandler[T]) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	input := map[string]any{}
	if err := dec.Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "Request body must be a JSON object.")
		return nil, false
	}
	if input == nil {
		input = map[string]any{}
	}
	return input, true
}
