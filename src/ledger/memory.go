package ledger

import (
	"context"
	"sync"
	"time"

	"personhood-verifier/src/model"
)

type memoryRecord struct {
	consumedAt time.Time
	expiresAt  time.Time
}

// MemoryRepository keeps the ledger in process memory behind a single mutex.
// Same semantics as the durable repository, without the restart guarantee;
// meant for tests and development.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]memoryRecord)}
}

func recordKey(actionId string, nullifier model.Hash) string {
	return actionId + "\x00" + nullifier.Hex()
}

func (r *MemoryRepository) TryConsume(_ context.Context, actionId string, nullifier model.Hash, ttl time.Duration) (ConsumeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(actionId, nullifier)
	if _, exists := r.records[key]; exists {
		return AlreadyConsumed, nil
	}

	now := time.Now()
	r.records[key] = memoryRecord{consumedAt: now, expiresAt: now.Add(ttl)}
	return Consumed, nil
}

func (r *MemoryRepository) IsConsumed(_ context.Context, actionId string, nullifier model.Hash) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.records[recordKey(actionId, nullifier)]
	if !exists {
		return false, nil
	}
	return rec.expiresAt.After(time.Now()), nil
}

func (r *MemoryRepository) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var swept int64
	for key, rec := range r.records {
		if !rec.expiresAt.After(now) {
			delete(r.records, key)
			swept++
		}
	}
	return swept, nil
}
