package batch

import (
	"context"
	"sync"

	"personhood-verifier/src/model"
	"personhood-verifier/src/pipeline"
)

// Coordinator fans a batch of verification requests out over goroutines.
// Requests are independent: one rejection never aborts its siblings, and two
// requests sharing a nullifier are both verified, with the ledger picking the
// single winner in arbitrary order. Parallel pairing work is bounded by the
// verifier's semaphore, not here, so the same cap covers single submissions.
type Coordinator struct {
	pipeline *pipeline.Pipeline
}

func NewCoordinator(p *pipeline.Pipeline) *Coordinator {
	return &Coordinator{pipeline: p}
}

// SubmitBatch returns one outcome per request, in input order.
func (c *Coordinator) SubmitBatch(ctx context.Context, requests []*model.VerificationRequest) []model.Outcome {
	outcomes := make([]model.Outcome, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *model.VerificationRequest) {
			defer wg.Done()
			outcomes[i] = c.pipeline.Verify(ctx, req)
		}(i, req)
	}
	wg.Wait()

	return outcomes
}
