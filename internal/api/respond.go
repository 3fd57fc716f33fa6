package api

import (
	"encoding/json"
	"net/http"

	"fundline/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps sentinel errors onto HTTP status codes. Unrecognized
// errors get a generic 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrSessionNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errors.ErrAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errors.ErrUnavailable), errors.Is(err, errors.ErrLLMUnavailable):
		status = http.StatusServiceUnavailable
		message = "service unavailable"
	}

	writeJSON(w, status, map[string]string{"error": message})
}
