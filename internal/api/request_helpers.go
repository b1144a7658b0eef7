package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mercato/storefront-api/internal/service"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// getAccountIDFromContext extracts the authenticated account's UUID from
// the request context, where the authentication middleware placed it.
// Returns uuid.Nil and false if no verified identity is present.
func getAccountIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return service.AccountIDFromContext(r.Context())
}

// parseIDParam parses the {id} URL parameter as a UUID.
func parseIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ID %q: %w", raw, err)
	}
	return id, nil
}
