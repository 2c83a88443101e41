package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eshop-relay/internal/application/auth"
	"github.com/eshop-relay/internal/domain"
	"github.com/eshop-relay/internal/pkg/validate"
)

// OTPHandler handles the OTP issue/verify flows and password reset.
type OTPHandler struct {
	svc auth.Service
}

func NewOTPHandler(svc auth.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SendOTP issues a password-reset code. The response does not reveal whether
// email delivery succeeded; delivery is fire-and-forget by design.
func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSend(w, r)
	if !ok {
		return
	}
	if err := h.svc.SendOTP(r.Context(), req.Email); err != nil {
		slog.Error("send otp failed", "err", err)
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Unable to send OTP. Please try again."})
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to your email."})
}

func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVerify(w, r)
	if !ok {
		return
	}
	result := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	writeJSON(w, http.StatusOK, verifyEnvelope(result, "OTP verified"))
}

func (h *OTPHandler) SendRegisterOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSend(w, r)
	if !ok {
		return
	}
	err := h.svc.SendRegisterOTP(r.Context(), req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: true, Message: "OTP sent."})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: false, Message: "Email already registered."})
	default:
		slog.Error("send register otp failed", "err", err)
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: false, Message: "Server error."})
	}
}

func (h *OTPHandler) VerifyRegisterOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVerify(w, r)
	if !ok {
		return
	}
	result := h.svc.VerifyRegisterOTP(r.Context(), req.Email, req.OTP)
	writeJSON(w, http.StatusOK, verifyEnvelope(result, "Email verified for signup"))
}

// ResetPassword requires a reset grant recorded by a prior successful
// verify-otp for the same email.
func (h *OTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalid(w, err)
		return
	}

	err := h.svc.ResetPassword(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: true, Message: "Password updated"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: false, Message: "OTP verification required."})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: false, Message: "User not found."})
	default:
		slog.Error("reset password failed", "err", err)
		writeJSON(w, http.StatusOK, StatusEnvelope{Success: false, Message: "Reset failed."})
	}
}

func verifyEnvelope(result domain.VerifyResult, okMsg string) StatusEnvelope {
	switch result {
	case domain.VerifyOK:
		return StatusEnvelope{Success: true, Message: okMsg}
	case domain.VerifyExpired:
		return StatusEnvelope{Success: false, Message: "OTP expired."}
	case domain.VerifyMismatch:
		return StatusEnvelope{Success: false, Message: "Incorrect OTP."}
	default:
		return StatusEnvelope{Success: false, Message: "OTP not found."}
	}
}

func decodeSend(w http.ResponseWriter, r *http.Request) (sendOTPRequest, bool) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalid(w, err)
		return req, false
	}
	return req, true
}

func decodeVerify(w http.ResponseWriter, r *http.Request) (verifyOTPRequest, bool) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		writeInvalid(w, err)
		return req, false
	}
	return req, true
}
