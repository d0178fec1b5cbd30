package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eslsoft/wordbook/internal/entity"
)

// Envelope is the uniform response wrapper. Errors reuse the same shape
// with the message carrying the failure description.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, message, nil)
}

// writeDomainError translates a usecase error into the envelope. Validation
// failures map to 400, missing entries to 404, everything else is masked as
// an internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidWordText),
		errors.Is(err, entity.ErrInvalidWordID),
		errors.Is(err, entity.ErrInvalidOrder),
		errors.Is(err, entity.ErrInvalidRange),
		errors.Is(err, entity.ErrEmptyKeyword),
		errors.Is(err, entity.ErrNoUpdateFields):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrWordNotFound):
		writeError(w, http.StatusNotFound, "Word not found")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
