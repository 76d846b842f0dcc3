package zkp

import (
	"bytes"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

const ElipticalCurveID = ecc.BN254

// KeyMaterial bundles the compiled constraint system with its Groth16 keys.
// The proving side needs all three; the verifier only needs the verifying key.
type KeyMaterial struct {
	ConstraintSystem constraint.ConstraintSystem
	ProvingKey       groth16.ProvingKey
	VerifyingKey     groth16.VerifyingKey
}

// GenerateKeys compiles the membership circuit and runs the Groth16 setup.
// Only for development and tests: production deployments load keys produced
// by a trusted ceremony.
func GenerateKeys() (*KeyMaterial, error) {
	var circuit MembershipCircuit

	ccs, err := frontend.Compile(
		ElipticalCurveID.ScalarField(),
		r1cs.NewBuilder,
		&circuit,
	)
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}

	return &KeyMaterial{
		ConstraintSystem: ccs,
		ProvingKey:       pk,
		VerifyingKey:     vk,
	}, nil
}

func LoadVerifyingKey(path string) (groth16.VerifyingKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verifying key: %w", err)
	}

	vk := groth16.NewVerifyingKey(ElipticalCurveID)
	if _, err := vk.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("deserialize verifying key: %w", err)
	}
	return vk, nil
}

func SaveVerifyingKey(vk groth16.VerifyingKey, path string) error {
	var buf bytes.Buffer
	if _, err := vk.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize verifying key: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
