package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eshop-relay/internal/domain"
)

// MessageEnvelope wraps responses that carry only a message.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// StatusEnvelope is the uniform {success, message} response body. Failures are
// reported inside it with HTTP 200; callers inspect the body, not the status.
type StatusEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatEnvelope wraps chat replies.
type ChatEnvelope struct {
	Reply string `json:"reply"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, StatusEnvelope{Success: false, Message: msg})
}

// writeInvalid reports a request-body validation failure. Anything that is not
// a domain.ErrBadRequest came from the validator itself, not the client.
func writeInvalid(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	if !errors.Is(err, domain.ErrBadRequest) {
		status = http.StatusInternalServerError
	}
	writeError(w, status, err.Error())
}
