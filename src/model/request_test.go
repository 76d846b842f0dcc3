package model

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func validRequest() VerificationRequest {
	var root, nullifier Hash
	root[31] = 1
	nullifier[31] = 2

	return VerificationRequest{
		ActionId:      "vote-42",
		Signal:        []byte("yes"),
		Root:          root,
		NullifierHash: nullifier,
		Proof:         bytes.Repeat([]byte{0xAB}, 132),
		SubmittedAt:   time.Now(),
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req := validRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got: %v", err)
	}
}

func TestValidateRejectsStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*VerificationRequest)
		expected error
	}{
		{
			name:     "empty action id",
			mutate:   func(r *VerificationRequest) { r.ActionId = "" },
			expected: ErrEmptyActionId,
		},
		{
			name:     "oversized action id",
			mutate:   func(r *VerificationRequest) { r.ActionId = string(bytes.Repeat([]byte("a"), ActionIdMaxLength+1)) },
			expected: ErrActionIdTooLong,
		},
		{
			name:     "oversized signal",
			mutate:   func(r *VerificationRequest) { r.Signal = bytes.Repeat([]byte{1}, SignalMaxLength+1) },
			expected: ErrSignalTooLong,
		},
		{
			name:     "zero root",
			mutate:   func(r *VerificationRequest) { r.Root = Hash{} },
			expected: ErrZeroRoot,
		},
		{
			name:     "zero nullifier",
			mutate:   func(r *VerificationRequest) { r.NullifierHash = Hash{} },
			expected: ErrZeroNullifier,
		},
		{
			name:     "proof too short",
			mutate:   func(r *VerificationRequest) { r.Proof = []byte{1, 2, 3} },
			expected: ErrProofLength,
		},
		{
			name:     "proof too long",
			mutate:   func(r *VerificationRequest) { r.Proof = bytes.Repeat([]byte{1}, ProofMaxLength+1) },
			expected: ErrProofLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestParseHash(t *testing.T) {
	original := validRequest().Root

	parsed, err := ParseHash(original.Hex())
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if parsed != original {
		t.Errorf("expected %s, got %s", original.Hex(), parsed.Hex())
	}

	if _, err := ParseHash("zz"); err == nil {
		t.Error("expected error for non-hex input")
	}
	if _, err := ParseHash("abcd"); err == nil {
		t.Error("expected error for short input")
	}
}

func TestOutcomeCacheable(t *testing.T) {
	if !Accept().Cacheable() {
		t.Error("Accepted should be cacheable")
	}
	if !Reject("InvalidProof").Cacheable() {
		t.Error("InvalidProof rejection should be cacheable")
	}
	if Reject("StaleRoot").Cacheable() {
		t.Error("StaleRoot must never be cached")
	}
	if Reject("AlreadyConsumed").Cacheable() {
		t.Error("AlreadyConsumed is re-derived from the ledger, not cached")
	}
	if Timeout().Cacheable() {
		t.Error("Timeout must never be cached")
	}
	if StoreUnavailable().Cacheable() {
		t.Error("Unavailable must never be cached")
	}
}
