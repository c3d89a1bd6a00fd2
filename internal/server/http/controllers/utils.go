package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NeilDarach/msg-q/internal/queue"
)

// apiResponseBody is the envelope wrapping every API response.
type apiResponseBody struct {
	StatusCode int `json:"status_code"`
	Data       any `json:"data"`
}

// apiErrorData is the payload carried by error envelopes.
type apiErrorData struct {
	Message string `json:"message"`
}

// writeJSON writes an enveloped JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponseBody{StatusCode: status, Data: data})
}

// writeError writes an enveloped error response with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponseBody{
		StatusCode: status,
		Data:       apiErrorData{Message: message},
	})
}

// writeEngineError maps an engine error kind to a status code. Caller-input
// errors map to 422, absent resources to 404, anything unexpected to 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, queue.ErrMissingParameter),
		errors.Is(err, queue.ErrInvalidParameter),
		errors.Is(err, queue.ErrEmptyQueueName):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, queue.ErrNoMessage), errors.Is(err, queue.ErrNoQueue):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
