package model

import (
	"errors"
	"time"
)

const (
	ActionIdMaxLength = 256
	SignalMaxLength   = 4096

	// A compressed BN254 Groth16 proof is 128 bytes of curve points plus a
	// short commitment section; anything outside these bounds cannot
	// deserialize and is rejected before the verifier is invoked.
	ProofMinLength = 128
	ProofMaxLength = 1024
)

var (
	ErrEmptyActionId   = errors.New("action id is empty")
	ErrActionIdTooLong = errors.New("action id exceeds maximum length")
	ErrSignalTooLong   = errors.New("signal exceeds maximum length")
	ErrZeroRoot        = errors.New("root is zero")
	ErrZeroNullifier   = errors.New("nullifier hash is zero")
	ErrProofLength     = errors.New("proof blob has invalid length")
)

// VerificationRequest is a single proof-of-personhood submission. Immutable
// after creation; owned by one pipeline run.
type VerificationRequest struct {
	ActionId      string
	Signal        []byte
	Root          Root
	NullifierHash Hash
	Proof         []byte
	SubmittedAt   time.Time
}

// Validate performs the structural checks of the Validated pipeline stage.
// Cryptographic checks are not its concern; it exists so garbage is rejected
// before any pairing work happens.
func (r *VerificationRequest) Validate() error {
	if r.ActionId == "" {
		return ErrEmptyActionId
	}
	if len(r.ActionId) > ActionIdMaxLength {
		return ErrActionIdTooLong
	}
	if len(r.Signal) > SignalMaxLength {
		return ErrSignalTooLong
	}
	if r.Root.IsZero() {
		return ErrZeroRoot
	}
	if r.NullifierHash.IsZero() {
		return ErrZeroNullifier
	}
	if len(r.Proof) < ProofMinLength || len(r.Proof) > ProofMaxLength {
		return ErrProofLength
	}
	return nil
}
