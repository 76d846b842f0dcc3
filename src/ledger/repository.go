package ledger

import (
	"context"
	"fmt"
	"time"

	"personhood-verifier/src/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsumeResult int

const (
	Consumed ConsumeResult = iota
	AlreadyConsumed
)

// Repository is the nullifier ledger. TryConsume is the single
// compare-and-insert of the whole system: under concurrent calls for the same
// (actionId, nullifierHash), exactly one caller observes Consumed. Storage
// faults are returned as errors and must never be reported as
// AlreadyConsumed.
type Repository interface {
	TryConsume(ctx context.Context, actionId string, nullifier model.Hash, ttl time.Duration) (ConsumeResult, error)
	IsConsumed(ctx context.Context, actionId string, nullifier model.Hash) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) TryConsume(ctx context.Context, actionId string, nullifier model.Hash, ttl time.Duration) (ConsumeResult, error) {
	now := time.Now()
	record := NullifierRecord{
		ActionId:      actionId,
		NullifierHash: nullifier.Hex(),
		ConsumedAt:    now,
		ExpiresAt:     now.Add(ttl),
	}

	// ON CONFLICT DO NOTHING makes the insert the serialization point: the
	// database arbitrates races, no wider transaction needed. An expired but
	// not yet swept record still conflicts; the pair becomes consumable again
	// only after the sweep.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return AlreadyConsumed, fmt.Errorf("insert nullifier record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return AlreadyConsumed, nil
	}
	return Consumed, nil
}

func (r *gormRepository) IsConsumed(ctx context.Context, actionId string, nullifier model.Hash) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&NullifierRecord{}).
		Where("action_id = ? AND nullifier_hash = ? AND expires_at > ?", actionId, nullifier.Hex(), time.Now()).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("query nullifier record: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&NullifierRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("sweep expired nullifiers: %w", result.Error)
	}
	return result.RowsAffected, nil
}
