package ledger

import (
	"time"
)

// NullifierRecord marks a (action, nullifier) pair as consumed. Created
// exactly once when a proof for the pair first passes verification, never
// updated, removed only by the expiry sweep. Uniqueness of the pair is the
// core security invariant: it is what keeps one human from being counted
// twice for the same action.
type NullifierRecord struct {
	Id            int       `gorm:"primaryKey;autoIncrement"`
	ActionId      string    `gorm:"uniqueIndex:idx_action_nullifier;size:256;not null"`
	NullifierHash string    `gorm:"uniqueIndex:idx_action_nullifier;size:64;not null"`
	ConsumedAt    time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"index;not null"`
}
