package ledger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"personhood-verifier/src/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "ledger.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// SQLite serializes writers anyway; a single connection avoids busy errors
	// under the concurrency tests.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&NullifierRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db)
}

func testHash(b byte) model.Hash {
	var h model.Hash
	h[31] = b
	return h
}

// Both implementations must satisfy the same contract, so every test runs
// against both.
func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"gorm":   newTestRepository(t),
		"memory": NewMemoryRepository(),
	}
}

func TestTryConsumeFirstWins(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			nullifier := testHash(1)

			result, err := repo.TryConsume(ctx, "vote-1", nullifier, time.Hour)
			if err != nil {
				t.Fatalf("first consume: %v", err)
			}
			if result != Consumed {
				t.Fatalf("expected Consumed, got %v", result)
			}

			result, err = repo.TryConsume(ctx, "vote-1", nullifier, time.Hour)
			if err != nil {
				t.Fatalf("second consume: %v", err)
			}
			if result != AlreadyConsumed {
				t.Errorf("expected AlreadyConsumed, got %v", result)
			}

			consumed, err := repo.IsConsumed(ctx, "vote-1", nullifier)
			if err != nil {
				t.Fatalf("is consumed: %v", err)
			}
			if !consumed {
				t.Error("expected nullifier to be consumed")
			}
		})
	}
}

func TestTryConsumeScopedByActionAndNullifier(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if r, err := repo.TryConsume(ctx, "vote-1", testHash(1), time.Hour); err != nil || r != Consumed {
				t.Fatalf("seed consume: %v %v", r, err)
			}

			// Same nullifier under a different action is a separate pair.
			if r, err := repo.TryConsume(ctx, "vote-2", testHash(1), time.Hour); err != nil || r != Consumed {
				t.Errorf("different action: expected Consumed, got %v %v", r, err)
			}

			// Different nullifier under the same action as well.
			if r, err := repo.TryConsume(ctx, "vote-1", testHash(2), time.Hour); err != nil || r != Consumed {
				t.Errorf("different nullifier: expected Consumed, got %v %v", r, err)
			}
		})
	}
}

func TestTryConsumeConcurrentSingleWinner(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			const workers = 16
			nullifier := testHash(7)

			var wg sync.WaitGroup
			results := make([]ConsumeResult, workers)
			errs := make([]error, workers)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = repo.TryConsume(context.Background(), "race", nullifier, time.Hour)
				}(i)
			}
			wg.Wait()

			winners := 0
			for i := 0; i < workers; i++ {
				if errs[i] != nil {
					t.Fatalf("worker %d: %v", i, errs[i])
				}
				if results[i] == Consumed {
					winners++
				}
			}
			if winners != 1 {
				t.Errorf("expected exactly one winner, got %d", winners)
			}
		})
	}
}

func TestExpiryAndSweep(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			nullifier := testHash(9)

			// Negative TTL: the record is born expired.
			if r, err := repo.TryConsume(ctx, "expiring", nullifier, -time.Minute); err != nil || r != Consumed {
				t.Fatalf("seed consume: %v %v", r, err)
			}

			// Expired records no longer count as consumed.
			consumed, err := repo.IsConsumed(ctx, "expiring", nullifier)
			if err != nil {
				t.Fatalf("is consumed: %v", err)
			}
			if consumed {
				t.Error("expired record should not report consumed")
			}

			// The row still occupies the unique index until swept.
			if r, err := repo.TryConsume(ctx, "expiring", nullifier, time.Hour); err != nil || r != AlreadyConsumed {
				t.Fatalf("pre-sweep consume: expected AlreadyConsumed, got %v %v", r, err)
			}

			swept, err := repo.SweepExpired(ctx, time.Now())
			if err != nil {
				t.Fatalf("sweep: %v", err)
			}
			if swept != 1 {
				t.Errorf("expected 1 swept record, got %d", swept)
			}

			// After the sweep the pair is consumable again.
			if r, err := repo.TryConsume(ctx, "expiring", nullifier, time.Hour); err != nil || r != Consumed {
				t.Errorf("post-sweep consume: expected Consumed, got %v %v", r, err)
			}
		})
	}
}

func TestSweepLeavesLiveRecords(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := repo.TryConsume(ctx, "live", testHash(1), time.Hour); err != nil {
				t.Fatalf("consume live: %v", err)
			}
			if _, err := repo.TryConsume(ctx, "dead", testHash(2), -time.Minute); err != nil {
				t.Fatalf("consume dead: %v", err)
			}

			swept, err := repo.SweepExpired(ctx, time.Now())
			if err != nil {
				t.Fatalf("sweep: %v", err)
			}
			if swept != 1 {
				t.Errorf("expected 1 swept record, got %d", swept)
			}

			consumed, err := repo.IsConsumed(ctx, "live", testHash(1))
			if err != nil {
				t.Fatalf("is consumed: %v", err)
			}
			if !consumed {
				t.Error("live record must survive the sweep")
			}
		})
	}
}
