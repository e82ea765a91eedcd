package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/RyanHLA/iasminsantos/internal/store"
)

// JSON helpers for the endpoints the admin reorder widget and the client
// proofing grid call from script: toggle, submit, reorder, bulk delete.

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiError{Error: http.StatusText(statusCode), Message: message})
}

// parseJSONBody decodes the request body into v, capping body size.
func parseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// writeStoreError maps store failures onto JSON status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrCapReached):
		writeJSONError(w, http.StatusConflict, "Selection limit reached")
	case errors.Is(err, store.ErrEmptySelection):
		writeJSONError(w, http.StatusBadRequest, "Select at least one photo before submitting")
	case errors.Is(err, store.ErrAlbumSubmitted):
		writeJSONError(w, http.StatusConflict, "Selection already submitted")
	case store.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Store operation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
	}
}
