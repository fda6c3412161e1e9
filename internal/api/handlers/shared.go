package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// parseJSON decodes a request body into the given type, rejecting unknown
// fields so malformed payloads fail at the boundary.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode request body: %w", err)
	}

	return v, nil
}
