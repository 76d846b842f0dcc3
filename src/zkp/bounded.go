package zkp

import (
	"context"
	"fmt"

	"personhood-verifier/src/model"

	"golang.org/x/sync/semaphore"
)

// BoundedVerifier caps the number of pairing checks running at once. The
// check is pure CPU work; dispatching more of them than cores only causes
// thrashing, so excess requests queue on the semaphore. The bound is shared
// between the single-request path and batches.
type BoundedVerifier struct {
	inner ProofVerifier
	sem   *semaphore.Weighted
}

func NewBoundedVerifier(inner ProofVerifier, maxConcurrent int) *BoundedVerifier {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BoundedVerifier{
		inner: inner,
		sem:   semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

func (b *BoundedVerifier) Verify(ctx context.Context, req *model.VerificationRequest) (bool, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("verification slot: %w", err)
	}
	defer b.sem.Release(1)

	return b.inner.Verify(ctx, req)
}
