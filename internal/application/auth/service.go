// Package auth orchestrates the OTP flows: issuing codes for password reset
// and signup, verifying them, and delegating the actual password mutation to
// the identity gateway.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eshop-relay/internal/domain"
)

// Ledger is the OTP store the service issues against.
type Ledger interface {
	Issue(email string) (string, error)
	Verify(email, submitted string) domain.VerifyResult
	GrantReset(email string)
	ConsumeReset(email string) bool
}

// IdentityGateway is the external user directory.
type IdentityGateway interface {
	LookupByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, uid, newPassword string) error
}

// Mailer delivers plain-text mail to one recipient.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type Service interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) domain.VerifyResult
	SendRegisterOTP(ctx context.Context, email string) error
	VerifyRegisterOTP(ctx context.Context, email, otp string) domain.VerifyResult
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// ServiceDeps bundles the service's collaborators.
type ServiceDeps struct {
	Ledger   Ledger
	Identity IdentityGateway
	Mailer   Mailer
}

type service struct {
	ledger   Ledger
	identity IdentityGateway
	mailer   Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		ledger:   deps.Ledger,
		identity: deps.Identity,
		mailer:   deps.Mailer,
	}
}

// SendOTP issues a password-reset code and emails it. Delivery is
// fire-and-forget: a mail failure is logged and swallowed, and the caller
// still reports success to the client.
func (s *service) SendOTP(_ context.Context, email string) error {
	code, err := s.ledger.Issue(email)
	if err != nil {
		return err
	}
	s.dispatch(email, "Your OTP for Password Reset", code)
	return nil
}

// VerifyOTP checks the submitted code. A successful verification records a
// single-use reset grant so ResetPassword can require proof of possession.
func (s *service) VerifyOTP(_ context.Context, email, otp string) domain.VerifyResult {
	result := s.ledger.Verify(email, otp)
	if result == domain.VerifyOK {
		s.ledger.GrantReset(email)
	}
	slog.Info("otp verification", "flow", "reset", "email", email, "result", result.String())
	return result
}

// SendRegisterOTP issues a signup code, rejecting emails the directory
// already knows.
func (s *service) SendRegisterOTP(ctx context.Context, email string) error {
	_, err := s.identity.LookupByEmail(ctx, email)
	switch {
	case err == nil:
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	case errors.Is(err, domain.ErrNotFound):
		// Unknown email: free to register.
	default:
		return err
	}

	code, err := s.ledger.Issue(email)
	if err != nil {
		return err
	}
	s.dispatch(email, "OTP for E-Shop Signup", code)
	return nil
}

// VerifyRegisterOTP checks a signup code. No reset grant is recorded; signup
// verification authorizes nothing beyond itself.
func (s *service) VerifyRegisterOTP(_ context.Context, email, otp string) domain.VerifyResult {
	result := s.ledger.Verify(email, otp)
	slog.Info("otp verification", "flow", "register", "email", email, "result", result.String())
	return result
}

// ResetPassword consumes the reset grant recorded by VerifyOTP, then
// delegates the password update to the identity gateway.
func (s *service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if !s.ledger.ConsumeReset(email) {
		return fmt.Errorf("no verified OTP for %q: %w", email, domain.ErrUnauthorized)
	}
	u, err := s.identity.LookupByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.identity.UpdatePassword(ctx, u.UID, newPassword)
}

func (s *service) dispatch(email, subject, code string) {
	body := fmt.Sprintf("Your OTP is: %s\n\nIt expires in 5 minutes. If you did not request this code, please ignore this email.", code)
	if err := s.mailer.SendEmail(email, subject, body); err != nil {
		slog.Warn("otp email delivery failed", "to", email, "err", err)
	}
}
