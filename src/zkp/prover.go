package zkp

import (
	"fmt"

	"personhood-verifier/src/model"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

// MembershipWitness is everything a holder needs to prove enrollment: the
// identity secret plus the accumulator inclusion path of its commitment.
type MembershipWitness struct {
	IdentitySecret model.Hash
	PathElements   [TreeDepth]model.Hash
	PathIndices    [TreeDepth]int
}

// Prover generates membership proofs. Lives in the wallet/holder role; the
// service only uses it in tests and the dev CLI.
type Prover struct {
	keys *KeyMaterial
}

func NewProver(keys *KeyMaterial) *Prover {
	return &Prover{keys: keys}
}

// Prove produces a proof blob for (actionId, signal) together with the
// nullifier hash the verifier will check it against.
func (p *Prover) Prove(actionId string, signal []byte, root model.Root, mw MembershipWitness) ([]byte, model.Hash, error) {
	nullifier, err := DeriveNullifier(actionId, mw.IdentitySecret)
	if err != nil {
		return nil, model.Hash{}, err
	}

	assignment := MembershipCircuit{
		Root:           hashToElement(root),
		NullifierHash:  hashToElement(nullifier),
		ActionScope:    hashToElement(ActionScope(actionId)),
		SignalHash:     hashToElement(SignalHash(signal)),
		IdentitySecret: hashToElement(mw.IdentitySecret),
	}
	for i := 0; i < TreeDepth; i++ {
		assignment.PathElements[i] = hashToElement(mw.PathElements[i])
		assignment.PathIndices[i] = mw.PathIndices[i]
	}

	fullWitness, err := frontend.NewWitness(&assignment, ElipticalCurveID.ScalarField())
	if err != nil {
		return nil, model.Hash{}, fmt.Errorf("build witness: %w", err)
	}

	proof, err := groth16.Prove(p.keys.ConstraintSystem, p.keys.ProvingKey, fullWitness)
	if err != nil {
		return nil, model.Hash{}, fmt.Errorf("groth16 prove: %w", err)
	}

	blob, err := EncodeProof(proof)
	if err != nil {
		return nil, model.Hash{}, err
	}
	return blob, nullifier, nil
}
