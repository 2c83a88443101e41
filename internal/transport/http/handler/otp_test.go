package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eshop-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAuthSvc) VerifyOTP(ctx context.Context, email, otp string) domain.VerifyResult {
	return m.Called(ctx, email, otp).Get(0).(domain.VerifyResult)
}
func (m *mockAuthSvc) SendRegisterOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAuthSvc) VerifyRegisterOTP(ctx context.Context, email, otp string) domain.VerifyResult {
	return m.Called(ctx, email, otp).Get(0).(domain.VerifyResult)
}
func (m *mockAuthSvc) ResetPassword(ctx context.Context, email, newPassword string) error {
	return m.Called(ctx, email, newPassword).Error(0)
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) StatusEnvelope {
	t.Helper()
	var env StatusEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// --- VerifyOTP envelope mapping ---

func TestVerifyOTP_EnvelopeMapping(t *testing.T) {
	cases := []struct {
		result      domain.VerifyResult
		wantSuccess bool
		wantMessage string
	}{
		{domain.VerifyOK, true, "OTP verified"},
		{domain.VerifyNotFound, false, "OTP not found."},
		{domain.VerifyExpired, false, "OTP expired."},
		{domain.VerifyMismatch, false, "Incorrect OTP."},
	}
	for _, tc := range cases {
		t.Run(tc.wantMessage, func(t *testing.T) {
			svc := &mockAuthSvc{}
			svc.On("VerifyOTP", mock.Anything, "a@x.com", "123456").Return(tc.result)
			h := NewOTPHandler(svc)

			rec := postJSON(t, h.VerifyOTP, map[string]string{"email": "a@x.com", "otp": "123456"})

			// Soft-failure convention: outcome lives in the body, not the status.
			assert.Equal(t, http.StatusOK, rec.Code)
			env := decodeStatus(t, rec)
			assert.Equal(t, tc.wantSuccess, env.Success)
			assert.Equal(t, tc.wantMessage, env.Message)
		})
	}
}

func TestVerifyOTP_MalformedBody(t *testing.T) {
	h := NewOTPHandler(&mockAuthSvc{})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTP_NonNumericOTP_Rejected(t *testing.T) {
	h := NewOTPHandler(&mockAuthSvc{})
	rec := postJSON(t, h.VerifyOTP, map[string]string{"email": "a@x.com", "otp": "abc123"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// --- SendOTP ---

func TestSendOTP_AlwaysReportsSent(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendOTP", mock.Anything, "a@x.com").Return(nil)
	h := NewOTPHandler(svc)

	rec := postJSON(t, h.SendOTP, map[string]string{"email": "a@x.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var env MessageEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "OTP sent to your email.", env.Message)
}

func TestSendOTP_InvalidEmail_Rejected(t *testing.T) {
	h := NewOTPHandler(&mockAuthSvc{})
	rec := postJSON(t, h.SendOTP, map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// --- SendRegisterOTP ---

func TestSendRegisterOTP_Duplicate(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendRegisterOTP", mock.Anything, "taken@x.com").
		Return(fmt.Errorf("email already registered: %w", domain.ErrConflict))
	h := NewOTPHandler(svc)

	rec := postJSON(t, h.SendRegisterOTP, map[string]string{"email": "taken@x.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeStatus(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Email already registered.", env.Message)
}

func TestSendRegisterOTP_GatewayFailure_SoftError(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendRegisterOTP", mock.Anything, "new@x.com").
		Return(fmt.Errorf("lookup: %w", domain.ErrUnavailable))
	h := NewOTPHandler(svc)

	rec := postJSON(t, h.SendRegisterOTP, map[string]string{"email": "new@x.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeStatus(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Server error.", env.Message)
}

// --- ResetPassword ---

func TestResetPassword_EnvelopeMapping(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantSuccess bool
		wantMessage string
	}{
		{"ok", nil, true, "Password updated"},
		{"no grant", fmt.Errorf("grant: %w", domain.ErrUnauthorized), false, "OTP verification required."},
		{"unknown user", fmt.Errorf("user: %w", domain.ErrNotFound), false, "User not found."},
		{"gateway down", fmt.Errorf("update: %w", domain.ErrUnavailable), false, "Reset failed."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAuthSvc{}
			svc.On("ResetPassword", mock.Anything, "a@x.com", "newpassword").Return(tc.err)
			h := NewOTPHandler(svc)

			rec := postJSON(t, h.ResetPassword, map[string]string{"email": "a@x.com", "password": "newpassword"})

			assert.Equal(t, http.StatusOK, rec.Code)
			env := decodeStatus(t, rec)
			assert.Equal(t, tc.wantSuccess, env.Success)
			assert.Equal(t, tc.wantMessage, env.Message)
		})
	}
}

func TestResetPassword_ShortPassword_Rejected(t *testing.T) {
	h := NewOTPHandler(&mockAuthSvc{})
	rec := postJSON(t, h.ResetPassword, map[string]string{"email": "a@x.com", "password": "abc"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
