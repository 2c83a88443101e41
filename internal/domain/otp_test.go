package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyResult_String(t *testing.T) {
	cases := map[VerifyResult]string{
		VerifyNotFound: "not_found",
		VerifyExpired:  "expired",
		VerifyMismatch: "mismatch",
		VerifyOK:       "verified",
	}
	for result, want := range cases {
		assert.Equal(t, want, result.String())
	}
}
