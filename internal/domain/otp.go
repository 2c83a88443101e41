package domain

// PendingCode is a one-time passcode awaiting verification.
// Keyed by the email address it was issued for; at most one exists per email,
// a new issuance replaces the prior one outright. The code itself is stored
// hashed; ExpiresAt is Unix seconds.
type PendingCode struct {
	Email     string
	CodeHash  []byte
	ExpiresAt int64
}

// VerifyResult is the outcome of checking a submitted code against the ledger.
// All four outcomes are normal control flow, not errors.
type VerifyResult int

const (
	VerifyNotFound VerifyResult = iota
	VerifyExpired
	VerifyMismatch
	VerifyOK
)

func (r VerifyResult) String() string {
	switch r {
	case VerifyExpired:
		return "expired"
	case VerifyMismatch:
		return "mismatch"
	case VerifyOK:
		return "verified"
	default:
		return "not_found"
	}
}
