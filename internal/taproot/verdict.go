// Package taproot verifies BIP-341 Taproot commitments: key-path tweaks, script-path
// merkle commitments, address derivation and witness signatures.
package taproot

import (
	"errors"
)

// Verdict is the outcome of a Taproot commitment check.
type Verdict int

const (
	// InsufficientData means the inputs did not prove the commitment, without proving it false.
	InsufficientData Verdict = iota
	// Verified means the commitment was reproduced.
	Verified
	// Contradicted means a checkable mismatch was found.
	Contradicted
)

func (v Verdict) String() string {
	switch v {
	case Verified:
		return "verified"
	case Contradicted:
		return "contradicted"
	default:
		return "insufficient_data"
	}
}

var (
	// ErrOutputKeyMismatch reports a script-path commitment that does not reduce to the output key.
	ErrOutputKeyMismatch = errors.New("taproot output key mismatch")
	// ErrMalformedInput reports structurally invalid keys, scripts, control blocks or witnesses.
	ErrMalformedInput = errors.New("malformed taproot input")
	// ErrInvalidSignature reports a key-path signature that does not verify.
	ErrInvalidSignature = errors.New("invalid taproot signature")
	// ErrNotTaproot reports a spent output that is not a witness v1 program.
	ErrNotTaproot = errors.New("spent output is not pay-to-taproot")
)
