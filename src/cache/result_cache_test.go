package cache

import (
	"bytes"
	"testing"
	"time"

	"personhood-verifier/src/model"
)

func cacheRequest(action string, signal []byte, proofByte byte) *model.VerificationRequest {
	var root, nullifier model.Hash
	root[31] = 1
	nullifier[31] = 2

	return &model.VerificationRequest{
		ActionId:      action,
		Signal:        signal,
		Root:          root,
		NullifierHash: nullifier,
		Proof:         bytes.Repeat([]byte{proofByte}, 132),
		SubmittedAt:   time.Now(),
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))
	b := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))
	if a != b {
		t.Error("identical content must fingerprint identically")
	}
}

func TestFingerprintCoversContentFields(t *testing.T) {
	base := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))

	if FingerprintOf(cacheRequest("other", []byte("yes"), 0xAA)) == base {
		t.Error("action id must influence the fingerprint")
	}
	if FingerprintOf(cacheRequest("vote", []byte("no"), 0xAA)) == base {
		t.Error("signal must influence the fingerprint")
	}
	if FingerprintOf(cacheRequest("vote", []byte("yes"), 0xBB)) == base {
		t.Error("proof bytes must influence the fingerprint")
	}

	changed := cacheRequest("vote", []byte("yes"), 0xAA)
	changed.NullifierHash[0] = 0xFF
	if FingerprintOf(changed) == base {
		t.Error("nullifier must influence the fingerprint")
	}
}

func TestFingerprintIgnoresRoot(t *testing.T) {
	base := cacheRequest("vote", []byte("yes"), 0xAA)
	slid := cacheRequest("vote", []byte("yes"), 0xAA)
	slid.Root[0] = 0xFF

	// A resubmission that refreshes only its root field must still hit the
	// cache.
	if FingerprintOf(base) != FingerprintOf(slid) {
		t.Error("root must not influence the fingerprint")
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" differ only in where the boundary falls; the
	// length prefixes must keep them apart.
	a := FingerprintOf(cacheRequest("ab", []byte("c"), 0xAA))
	b := FingerprintOf(cacheRequest("a", []byte("bc"), 0xAA))
	if a == b {
		t.Error("field boundaries must be unambiguous")
	}
}

func TestPutAndGet(t *testing.T) {
	c := NewResultCache(8, time.Minute)
	fp := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))

	if _, ok := c.Get(fp); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Put(fp, model.Accept())

	outcome, ok := c.Get(fp)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if outcome.Status != model.Accepted {
		t.Errorf("expected Accepted, got %v", outcome.Status)
	}
}

func TestPutDropsNonCacheableOutcomes(t *testing.T) {
	c := NewResultCache(8, time.Minute)
	fp := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))

	for _, outcome := range []model.Outcome{
		model.Reject("StaleRoot"),
		model.Reject("AlreadyConsumed"),
		model.Reject("MalformedRequest"),
		model.Timeout(),
		model.StoreUnavailable(),
	} {
		c.Put(fp, outcome)
	}

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestEntriesExpire(t *testing.T) {
	c := NewResultCache(8, 30*time.Millisecond)
	fp := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))

	c.Put(fp, model.Reject("InvalidProof"))
	if _, ok := c.Get(fp); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(80 * time.Millisecond)

	if _, ok := c.Get(fp); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	c := NewResultCache(2, time.Minute)

	first := FingerprintOf(cacheRequest("a", nil, 0x01))
	second := FingerprintOf(cacheRequest("b", nil, 0x02))
	third := FingerprintOf(cacheRequest("c", nil, 0x03))

	c.Put(first, model.Accept())
	c.Put(second, model.Accept())
	c.Put(third, model.Accept())

	if c.Len() > 2 {
		t.Errorf("capacity exceeded: %d entries", c.Len())
	}
	if _, ok := c.Get(first); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get(third); !ok {
		t.Error("newest entry should survive")
	}
}

func TestStatsCounters(t *testing.T) {
	c := NewResultCache(8, time.Minute)
	fp := FingerprintOf(cacheRequest("vote", []byte("yes"), 0xAA))

	c.Get(fp)
	c.Put(fp, model.Accept())
	c.Get(fp)
	c.Get(fp)

	stats := c.Stats()
	if stats.Hits != 2 {
		t.Errorf("expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Entries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.Entries)
	}
}
