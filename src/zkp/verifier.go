package zkp

import (
	"context"
	"fmt"
	"sync/atomic"

	"personhood-verifier/src/model"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
)

// ProofVerifier decides proof validity for a request. Returns (false, nil) for
// a cryptographically false proof; an error only for structural failures
// (ErrMalformedProof) or internal faults. A false result is final for that
// proof blob.
type ProofVerifier interface {
	Verify(ctx context.Context, req *model.VerificationRequest) (bool, error)
}

type Groth16Verifier struct {
	vk groth16.VerifyingKey

	verifyCount atomic.Uint64
}

func NewGroth16Verifier(vk groth16.VerifyingKey) *Groth16Verifier {
	return &Groth16Verifier{vk: vk}
}

func (v *Groth16Verifier) VerifyCount() uint64 {
	return v.verifyCount.Load()
}

func (v *Groth16Verifier) Verify(_ context.Context, req *model.VerificationRequest) (bool, error) {
	proof, err := DecodeProof(req.Proof)
	if err != nil {
		return false, err
	}

	publicWitness, err := publicStatement(req)
	if err != nil {
		return false, fmt.Errorf("build public statement: %w", err)
	}

	v.verifyCount.Add(1)

	// gnark reports an invalid pairing check as an error; that is a decision,
	// not a fault.
	if err := groth16.Verify(proof, v.vk, publicWitness); err != nil {
		return false, nil
	}
	return true, nil
}

// publicStatement assembles the public inputs the proof must satisfy: the
// accumulator root, the nullifier, and the hashes of action id and signal.
// ActionId and signal are bound here, so a proof generated for one
// action/signal pair cannot be replayed against another.
func publicStatement(req *model.VerificationRequest) (witness.Witness, error) {
	assignment := MembershipCircuit{
		Root:          hashToElement(req.Root),
		NullifierHash: hashToElement(req.NullifierHash),
		ActionScope:   hashToElement(ActionScope(req.ActionId)),
		SignalHash:    hashToElement(SignalHash(req.Signal)),
	}

	w, err := frontend.NewWitness(&assignment, ElipticalCurveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, err
	}
	return w, nil
}
