package crypto

import (
	"github.com/pkg/errors"
)

var (
	// ErrVerificationFailure is the only error a verifier reports. It never
	// says which check failed.
	ErrVerificationFailure = errors.New("zkgroup: verification failure")

	ErrInvalidEncoding = errors.New("zkgroup: invalid encoding")
)
