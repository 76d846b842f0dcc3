package queues

import (
	"personhood-verifier/pkg/utilities"
	"personhood-verifier/src/verify"
)

// VerificationJobDto is an asynchronous proof submission taken off the queue.
type VerificationJobDto struct {
	EventId string                        `json:"event_id"`
	Request verify.VerificationRequestDto `json:"request"`
}

type VerificationResultDto struct {
	EventId string `json:"event_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

func (dto VerificationResultDto) Serialize() ([]byte, error) {
	return utilities.Serialize[VerificationResultDto](dto)
}

type VerificationFailureDto struct {
	EventId     string `json:"event_id"`
	Error       string `json:"error"`
	ReasonCode  string `json:"reason_code"`
	RequestBody []byte `json:"request_body"`
}

func (dto VerificationFailureDto) Serialize() ([]byte, error) {
	return utilities.Serialize[VerificationFailureDto](dto)
}
