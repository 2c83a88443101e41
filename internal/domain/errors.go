package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map failures to response envelopes
// without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrUnavailable  = errors.New("upstream unavailable")

	// ErrNoCandidates means the generation endpoint answered but produced no
	// usable candidate (quota exhaustion, safety block, malformed request).
	ErrNoCandidates = errors.New("no generation candidates")
)
