package zkp

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// TreeDepth fixes the enrollment accumulator depth. 2^20 enrolled identities
// is enough for a single deployment; the constant is baked into the circuit,
// so changing it invalidates existing keys.
const TreeDepth = 20

// MembershipCircuit proves that the prover knows an identity secret whose
// commitment is enrolled under Root, and that NullifierHash was derived from
// that secret scoped to ActionScope. SignalHash carries no constraint beyond
// being a public input: binding it into the statement is what prevents a proof
// from being replayed with a different payload.
type MembershipCircuit struct {
	Root          frontend.Variable `gnark:",public"`
	NullifierHash frontend.Variable `gnark:",public"`
	ActionScope   frontend.Variable `gnark:",public"`
	SignalHash    frontend.Variable `gnark:",public"`

	IdentitySecret frontend.Variable
	PathElements   [TreeDepth]frontend.Variable
	PathIndices    [TreeDepth]frontend.Variable
}

func (c *MembershipCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	h.Write(c.IdentitySecret)
	commitment := h.Sum()
	h.Reset()

	h.Write(c.ActionScope, c.IdentitySecret)
	nullifier := h.Sum()
	h.Reset()
	api.AssertIsEqual(nullifier, c.NullifierHash)

	node := commitment
	for i := 0; i < TreeDepth; i++ {
		api.AssertIsBoolean(c.PathIndices[i])

		left := api.Select(c.PathIndices[i], c.PathElements[i], node)
		right := api.Select(c.PathIndices[i], node, c.PathElements[i])

		h.Write(left, right)
		node = h.Sum()
		h.Reset()
	}
	api.AssertIsEqual(node, c.Root)

	// Square the signal hash so the constraint system cannot drop the input.
	api.Mul(c.SignalHash, c.SignalHash)

	return nil
}
