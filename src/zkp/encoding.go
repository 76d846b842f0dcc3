package zkp

import (
	"bytes"
	"errors"
	"fmt"

	"personhood-verifier/src/model"

	"github.com/consensys/gnark/backend/groth16"
)

// ErrMalformedProof marks a proof blob that failed structural decoding.
// Distinct from a cryptographically false proof: callers map it to the
// malformed-request rejection, not invalid-proof.
var ErrMalformedProof = errors.New("malformed proof encoding")

func EncodeProof(proof groth16.Proof) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize proof: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeProof deserializes a compressed Groth16 proof blob. Length bounds are
// checked first so garbage is refused without touching curve arithmetic.
func DecodeProof(blob []byte) (groth16.Proof, error) {
	if len(blob) < model.ProofMinLength || len(blob) > model.ProofMaxLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedProof, len(blob))
	}

	proof := groth16.NewProof(ElipticalCurveID)
	if _, err := proof.ReadFrom(bytes.NewReader(blob)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	return proof, nil
}
