package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"boardgame-catalog-api/internal/application"
	"boardgame-catalog-api/internal/domain"

	"github.com/rs/zerolog"
)

// MessageResponse is the body of every non-validation error
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ValidationResponse is the 422 body: one {field: message} object per failing field
type ValidationResponse struct {
	Errors []map[string]string `json:"errors"`
}

// CreatedResponse is the 201 body
type CreatedResponse struct {
	ID string `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// errorWriter maps service errors onto HTTP responses for one resource kind
type errorWriter struct {
	schema       application.Schema
	exposeDetail bool
	logger       zerolog.Logger
}

// write sends the response for err. fallback is the 500 message.
func (e errorWriter) write(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		body := ValidationResponse{Errors: make([]map[string]string, 0, len(verr.Fields))}
		for _, f := range verr.Fields {
			body.Errors = append(body.Errors, map[string]string{f.Field: f.Message})
		}
		writeJSON(w, http.StatusUnprocessableEntity, body)

	case errors.Is(err, domain.ErrInvalidID):
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format.", e.schema.Kind))

	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, e.schema.Label+" not found.")

	case errors.Is(err, domain.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "You must be logged in to access this resource.")

	default:
		e.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg(fallback)
		body := MessageResponse{Message: fallback}
		if e.exposeDetail {
			body.Error = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
