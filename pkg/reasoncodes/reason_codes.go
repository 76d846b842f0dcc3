package reasoncodes

type ReasonCode string

const (
	// Verification rejections surfaced to callers.
	MalformedRequest ReasonCode = "MalformedRequest"
	StaleRoot        ReasonCode = "StaleRoot"
	InvalidProof     ReasonCode = "InvalidProof"
	AlreadyConsumed  ReasonCode = "AlreadyConsumed"

	// Non-decision failures.
	Timeout     ReasonCode = "Timeout"
	Unavailable ReasonCode = "Unavailable"

	// Queue glue.
	ErrUnmarshal ReasonCode = "UnmarshalError"
)

// Transient reports whether a caller may retry the same action. A retry after
// StaleRoot needs a fresh proof against a current root; Timeout and Unavailable
// may be retried as-is. InvalidProof and AlreadyConsumed are final for the
// proof instance, MalformedRequest requires the caller to fix the request.
func (rc ReasonCode) Transient() bool {
	switch rc {
	case StaleRoot, Timeout, Unavailable:
		return true
	}
	return false
}
