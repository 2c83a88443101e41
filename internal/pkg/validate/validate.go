// Package validate checks the relay's inbound request bodies (emails, 6-digit
// OTPs, passwords, chat messages) against their validate tags and phrases
// failures in the same plain register the response envelopes use.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eshop-relay/internal/domain"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// Struct validates the given struct using its validate tags. A failure wraps
// domain.ErrBadRequest and reads like the rest of the relay's messages, e.g.
// "Invalid or missing otp (len)." — the sentinel never shows in the text.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var msgs []string
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("Invalid or missing %s (%s).", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return &requestError{msg: strings.Join(msgs, " ")}
}

// requestError keeps the client-facing text clean while still matching
// errors.Is(err, domain.ErrBadRequest).
type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return domain.ErrBadRequest }
