// Package firebase adapts the Firebase Auth admin SDK into the relay's
// identity-gateway interface: user lookup by email and password mutation.
// The directory itself is external; no credential material is held locally.
package firebase

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/eshop-relay/internal/config"
	"github.com/eshop-relay/internal/domain"
	"google.golang.org/api/option"
)

const callTimeout = 10 * time.Second

// Client is a thin pass-through to the Firebase Auth user directory.
type Client struct {
	auth *auth.Client
}

// NewClient initializes the admin SDK from the base64-encoded service-account
// blob in config, falling back to the credentials file path for local runs.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	creds, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}
	return &Client{auth: ac}, nil
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	if cfg.FirebaseCredentialsB64 != "" {
		creds, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentialsB64)
		if err != nil {
			return nil, fmt.Errorf("decode FIREBASE_CREDENTIALS_BASE64: %w", err)
		}
		return creds, nil
	}
	creds, err := os.ReadFile(cfg.FirebaseCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read firebase credentials file: %w", err)
	}
	return creds, nil
}

// LookupByEmail returns the directory record for email.
// An unknown email maps to domain.ErrNotFound; any other gateway failure maps
// to domain.ErrUnavailable.
func (c *Client) LookupByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	rec, err := c.auth.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("identity gateway lookup: %v: %w", err, domain.ErrUnavailable)
	}
	return &domain.User{
		UID:           rec.UID,
		Email:         rec.Email,
		DisplayName:   rec.DisplayName,
		EmailVerified: rec.EmailVerified,
		Disabled:      rec.Disabled,
	}, nil
}

// UpdatePassword sets a new password for the user with the given UID.
// Strength rules are whatever the directory enforces; nothing is checked here.
func (c *Client) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	update := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := c.auth.UpdateUser(ctx, uid, update); err != nil {
		return fmt.Errorf("identity gateway password update: %v: %w", err, domain.ErrUnavailable)
	}
	return nil
}
