// Package memstore holds the process-wide OTP ledger. State lives in memory
// only: nothing survives a restart and nothing is shared across instances.
package memstore

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/eshop-relay/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const sweepInterval = time.Minute

// Ledger maps an email address to its single pending OTP, plus the short-lived
// reset grants recorded when a recovery OTP verifies. Codes are bcrypt-hashed
// at rest. A background sweep purges expired entries so abandoned codes do not
// accumulate; expired entries read before the sweep are evicted on access.
type Ledger struct {
	mu     sync.Mutex
	codes  map[string]domain.PendingCode
	grants map[string]int64 // email -> grant expiry (Unix seconds)

	otpTTL   time.Duration
	grantTTL time.Duration

	done chan struct{}
}

// NewLedger creates a ledger and starts its sweep goroutine.
// Call Close to stop the sweep.
func NewLedger(otpTTL, grantTTL time.Duration) *Ledger {
	l := &Ledger{
		codes:    make(map[string]domain.PendingCode),
		grants:   make(map[string]int64),
		otpTTL:   otpTTL,
		grantTTL: grantTTL,
		done:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Issue generates a 6-digit code for email, stores it (replacing any pending
// code for that email) and returns the plaintext code for dispatch. Issue
// itself sends nothing.
func (l *Ledger) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := strconv.FormatInt(n.Int64()+100000, 10) // [100000, 999999]

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	l.mu.Lock()
	l.codes[email] = domain.PendingCode{
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(l.otpTTL).Unix(),
	}
	l.mu.Unlock()
	return code, nil
}

// Verify checks submitted against the pending code for email.
// Outcomes, in order: no pending code, code expired (evicted on this read),
// wrong code (record left in place, retries allowed until expiry), match
// (record consumed, single use).
func (l *Ledger) Verify(email, submitted string) domain.VerifyResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	pc, ok := l.codes[email]
	if !ok {
		return domain.VerifyNotFound
	}
	if time.Now().Unix() > pc.ExpiresAt {
		delete(l.codes, email)
		return domain.VerifyExpired
	}
	if bcrypt.CompareHashAndPassword(pc.CodeHash, []byte(submitted)) != nil {
		return domain.VerifyMismatch
	}
	delete(l.codes, email)
	return domain.VerifyOK
}

// GrantReset records that email passed OTP verification and may reset its
// password once within the grant TTL.
func (l *Ledger) GrantReset(email string) {
	l.mu.Lock()
	l.grants[email] = time.Now().Add(l.grantTTL).Unix()
	l.mu.Unlock()
}

// ConsumeReset reports whether a live reset grant exists for email and
// removes it. A grant authorizes exactly one password reset.
func (l *Ledger) ConsumeReset(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.grants[email]
	if !ok {
		return false
	}
	delete(l.grants, email)
	return time.Now().Unix() <= exp
}

// sweep purges expired codes and grants every minute.
func (l *Ledger) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			now := time.Now().Unix()
			l.mu.Lock()
			for email, pc := range l.codes {
				if now > pc.ExpiresAt {
					delete(l.codes, email)
				}
			}
			for email, exp := range l.grants {
				if now > exp {
					delete(l.grants, email)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Close stops the sweep goroutine.
func (l *Ledger) Close() {
	close(l.done)
}
