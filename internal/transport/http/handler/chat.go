package handler

import (
	"encoding/json"
	"net/http"

	"github.com/eshop-relay/internal/application/chat"
	"github.com/eshop-relay/internal/pkg/validate"
)

// ChatHandler forwards storefront chat messages to the relay service.
type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalid(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatEnvelope{Reply: h.svc.Reply(r.Context(), req.Message)})
}
