package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chirptalks/errors"
)

// writeJSON encodes a payload with the given status. Encoding failures are
// logged; headers are already gone at that point.
func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps an error to its REST status and a short human readable
// message. Unexpected errors stay opaque: the detail is logged, never sent.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Unexpected failure", "error", err)
		message = "server error"
	}
	writeJSON(w, log, status, map[string]string{"message": message})
}

// decodeJSON parses a request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
