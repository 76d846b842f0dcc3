package verify

import (
	"encoding/hex"
	"fmt"
	"time"

	"personhood-verifier/src/model"
)

// VerificationRequestDto is the JSON shape of a proof submission. Hashes and
// the proof blob travel hex-encoded; the signal is raw application bytes.
type VerificationRequestDto struct {
	ActionId      string `json:"action_id"`
	Signal        string `json:"signal"`
	Root          string `json:"root"`
	NullifierHash string `json:"nullifier_hash"`
	Proof         string `json:"proof"`
}

func (dto VerificationRequestDto) MapToDomain() (*model.VerificationRequest, error) {
	root, err := model.ParseHash(dto.Root)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}

	nullifier, err := model.ParseHash(dto.NullifierHash)
	if err != nil {
		return nil, fmt.Errorf("nullifier_hash: %w", err)
	}

	proof, err := hex.DecodeString(dto.Proof)
	if err != nil {
		return nil, fmt.Errorf("proof: %w", err)
	}

	return &model.VerificationRequest{
		ActionId:      dto.ActionId,
		Signal:        []byte(dto.Signal),
		Root:          root,
		NullifierHash: nullifier,
		Proof:         proof,
		SubmittedAt:   time.Now(),
	}, nil
}

type VerificationResultDto struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func MapOutcomeToDto(outcome model.Outcome) VerificationResultDto {
	return VerificationResultDto{
		Status: outcome.Status.String(),
		Reason: string(outcome.Reason),
	}
}
