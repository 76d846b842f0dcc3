package model

import (
	"time"

	reasoncodes "personhood-verifier/pkg/reasoncodes"
)

type Status int

const (
	// Accepted means the proof verified and the nullifier was durably
	// recorded for the action.
	Accepted Status = iota
	// Rejected is a decision against the request; Reason says why.
	Rejected
	// TimedOut means the request deadline elapsed before a decision was
	// reached. No ledger mutation happened on the caller's behalf.
	TimedOut
	// Unavailable means the ledger's backing store failed. Never conflated
	// with AlreadyConsumed: a storage fault must not deny a first-time user.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	case TimedOut:
		return "TimedOut"
	case Unavailable:
		return "Unavailable"
	}
	return "Unknown"
}

type Outcome struct {
	Status    Status
	Reason    reasoncodes.ReasonCode
	DecidedAt time.Time
}

func Accept() Outcome {
	return Outcome{Status: Accepted, DecidedAt: time.Now()}
}

func Reject(reason reasoncodes.ReasonCode) Outcome {
	return Outcome{Status: Rejected, Reason: reason, DecidedAt: time.Now()}
}

func Timeout() Outcome {
	return Outcome{Status: TimedOut, Reason: reasoncodes.Timeout, DecidedAt: time.Now()}
}

func StoreUnavailable() Outcome {
	return Outcome{Status: Unavailable, Reason: reasoncodes.Unavailable, DecidedAt: time.Now()}
}

// Cacheable reports whether an outcome may be memoized. Only Accepted and
// InvalidProof are idempotent for a byte-identical resubmission; StaleRoot is
// time-varying and a retry may legitimately succeed, AlreadyConsumed is
// re-derived from the ledger, which stays authoritative.
func (o Outcome) Cacheable() bool {
	if o.Status == Accepted {
		return true
	}
	return o.Status == Rejected && o.Reason == reasoncodes.InvalidProof
}
