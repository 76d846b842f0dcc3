package pipeline

import (
	"context"
	"errors"
	"time"

	"personhood-verifier/pkg/logger"
	"personhood-verifier/pkg/reasoncodes"
	"personhood-verifier/src/accumulator"
	"personhood-verifier/src/cache"
	"personhood-verifier/src/ledger"
	"personhood-verifier/src/model"
	"personhood-verifier/src/zkp"
)

// Pipeline runs one verification request through validation, root check,
// cache lookup, proof verification and nullifier consumption. Outcomes are
// values, never panics: a rejection must not look like a crash to callers.
type Pipeline struct {
	window   *accumulator.RootWindow
	verifier zkp.ProofVerifier
	ledger   ledger.Repository
	results  *cache.ResultCache

	nullifierTTL   time.Duration
	requestTimeout time.Duration

	logger *logger.Logger
}

type Config struct {
	NullifierTTL   time.Duration
	RequestTimeout time.Duration
}

func New(
	window *accumulator.RootWindow,
	verifier zkp.ProofVerifier,
	repo ledger.Repository,
	results *cache.ResultCache,
	cfg Config,
) *Pipeline {
	return &Pipeline{
		window:         window,
		verifier:       verifier,
		ledger:         repo,
		results:        results,
		nullifierTTL:   cfg.NullifierTTL,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger.Default(),
	}
}

type verdict struct {
	valid bool
	err   error
}

func (p *Pipeline) Verify(ctx context.Context, req *model.VerificationRequest) model.Outcome {
	// Structural checks first: garbage never reaches the ledger or the
	// pairing check. Not cached, the caller must fix and resend.
	if err := req.Validate(); err != nil {
		return model.Reject(reasoncodes.MalformedRequest)
	}

	if !p.window.Contains(req.Root) {
		// Never cached: root acceptance is time-varying and a retry with a
		// fresh proof may legitimately succeed.
		return model.Reject(reasoncodes.StaleRoot)
	}

	fp := cache.FingerprintOf(req)
	if outcome, ok := p.results.Get(fp); ok {
		return outcome
	}

	// Cheap existence check before the expensive verification: a replay
	// flood of consumed nullifiers is rejected without pairing work.
	consumed, err := p.ledger.IsConsumed(ctx, req.ActionId, req.NullifierHash)
	if err != nil {
		p.logger.Error(err, "Nullifier ledger unavailable")
		return model.StoreUnavailable()
	}
	if consumed {
		return model.Reject(reasoncodes.AlreadyConsumed)
	}

	runCtx := ctx
	if p.requestTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.requestTimeout)
		defer cancel()
	}

	// The pairing check runs on its own goroutine so the deadline stays
	// enforceable. A request still queued for a verification slot when the
	// deadline fires is abandoned (the semaphore acquire honors runCtx), so
	// timed-out callers never pile up as waiters. A check already running is
	// pure CPU work and finishes; its invalid-proof outcome may still populate
	// the cache for a near-simultaneous retry. Accepted is never cached from
	// this path, it always implies a ledger record.
	done := make(chan verdict, 1)
	go func() {
		valid, verifyErr := p.verifier.Verify(runCtx, req)
		if verifyErr == nil && !valid {
			p.results.Put(fp, model.Reject(reasoncodes.InvalidProof))
		}
		done <- verdict{valid: valid, err: verifyErr}
	}()

	select {
	case <-runCtx.Done():
		// No ledger mutation happened and none will on this caller's behalf.
		return model.Timeout()
	case v := <-done:
		return p.settle(ctx, req, fp, v)
	}
}

// settle turns a verifier verdict into the final outcome, consuming the
// nullifier on success.
func (p *Pipeline) settle(ctx context.Context, req *model.VerificationRequest, fp cache.Fingerprint, v verdict) model.Outcome {
	if v.err != nil {
		// A deadline abort while queued for a slot is a timeout, not a fault.
		if errors.Is(v.err, context.Canceled) || errors.Is(v.err, context.DeadlineExceeded) {
			return model.Timeout()
		}
		if errors.Is(v.err, zkp.ErrMalformedProof) {
			return model.Reject(reasoncodes.MalformedRequest)
		}
		p.logger.Error(v.err, "Proof verifier fault")
		return model.StoreUnavailable()
	}

	if !v.valid {
		return model.Reject(reasoncodes.InvalidProof)
	}

	// The insert is detached from the caller's deadline: once the proof
	// verified in time, an interrupted insert would leave the caller unsure
	// whether its action was recorded.
	result, err := p.ledger.TryConsume(context.WithoutCancel(ctx), req.ActionId, req.NullifierHash, p.nullifierTTL)
	if err != nil {
		p.logger.Error(err, "Nullifier ledger unavailable")
		return model.StoreUnavailable()
	}
	if result == ledger.AlreadyConsumed {
		// Another request won the race between the existence check and the
		// insert. Its proof being individually valid does not help: exactly
		// one success per (action, nullifier) pair.
		return model.Reject(reasoncodes.AlreadyConsumed)
	}

	outcome := model.Accept()
	p.results.Put(fp, outcome)

	p.logger.Infof("Accepted proof for action %s, nullifier %s", req.ActionId, req.NullifierHash.Hex())
	return outcome
}
