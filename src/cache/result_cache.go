package cache

import (
	"sync/atomic"
	"time"

	"personhood-verifier/src/model"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ResultCache memoizes verification outcomes so duplicate submissions skip
// the pairing check. It is an optimization over the ledger, never a
// substitute: eviction of an Accepted entry only means a resubmission
// re-derives AlreadyConsumed from the ledger at higher cost.
type ResultCache struct {
	lru *expirable.LRU[Fingerprint, model.Outcome]

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewResultCache(capacity int, ttl time.Duration) *ResultCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ResultCache{
		lru: expirable.NewLRU[Fingerprint, model.Outcome](capacity, nil, ttl),
	}
}

func (c *ResultCache) Get(fp Fingerprint) (model.Outcome, bool) {
	outcome, ok := c.lru.Get(fp)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return outcome, ok
}

// Put stores an outcome if it is safe to replay. Non-cacheable outcomes are
// dropped silently so callers do not need to special-case them.
func (c *ResultCache) Put(fp Fingerprint, outcome model.Outcome) {
	if !outcome.Cacheable() {
		return
	}
	c.lru.Add(fp, outcome)
}

func (c *ResultCache) Len() int {
	return c.lru.Len()
}

type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

func (c *ResultCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.lru.Len(),
	}
}
