package handler

import "net/http"

// HealthHandler handles the liveness probe and the test echo.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "E-Shop relay is running"})
}

func (h *HealthHandler) Test(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "POST request is working!"})
}
