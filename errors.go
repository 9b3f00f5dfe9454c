package api

import (
	"github.com/MixinNetwork/zkgroup-go/crypto"
)

var (
	// ErrVerificationFailure is returned by every issue, receive and verify
	// path that checks a proof. It carries no detail about which check failed.
	ErrVerificationFailure = crypto.ErrVerificationFailure

	// ErrInvalidEncoding is wrapped with the name of the object that failed
	// to decode.
	ErrInvalidEncoding = crypto.ErrInvalidEncoding
)
