package zkp

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"personhood-verifier/src/model"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// The credential scheme hashes everything into the BN254 scalar field with
// MiMC, matching the in-circuit hash gadget byte for byte.

func elementToHash(e fr.Element) model.Hash {
	return model.Hash(e.Bytes())
}

func hashToElement(h model.Hash) fr.Element {
	var e fr.Element
	e.SetBytes(h[:])
	return e
}

func mimcSum(inputs ...model.Hash) (model.Hash, error) {
	hasher := mimc.NewMiMC()
	for _, in := range inputs {
		if _, err := hasher.Write(in[:]); err != nil {
			return model.Hash{}, fmt.Errorf("mimc write: %w", err)
		}
	}
	var e fr.Element
	e.SetBytes(hasher.Sum(nil))
	return elementToHash(e), nil
}

// HashToField maps arbitrary bytes into a canonical field element. Used for
// action ids and signals, which the caller chooses freely.
func HashToField(data []byte) model.Hash {
	digest := sha256.Sum256(data)
	var n big.Int
	n.SetBytes(digest[:])
	n.Mod(&n, fr.Modulus())

	var e fr.Element
	e.SetBigInt(&n)
	return elementToHash(e)
}

func ActionScope(actionId string) model.Hash {
	return HashToField([]byte(actionId))
}

func SignalHash(signal []byte) model.Hash {
	return HashToField(signal)
}

// NewIdentitySecret draws a uniformly random field element. The secret never
// leaves the holder; only its commitment is enrolled.
func NewIdentitySecret() (model.Hash, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return model.Hash{}, fmt.Errorf("draw identity secret: %w", err)
	}
	return elementToHash(e), nil
}

func IdentityCommitment(secret model.Hash) (model.Hash, error) {
	return mimcSum(secret)
}

func DeriveNullifier(actionId string, secret model.Hash) (model.Hash, error) {
	return mimcSum(ActionScope(actionId), secret)
}

// HashPair is the accumulator's two-to-one node hash.
func HashPair(left, right model.Hash) (model.Hash, error) {
	return mimcSum(left, right)
}
