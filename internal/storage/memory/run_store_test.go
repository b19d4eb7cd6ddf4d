package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/storage"
)

func testRun(id string, day int) *domain.SimulationRun {
	return &domain.SimulationRun{
		RunID:     id,
		CreatedAt: time.Unix(int64(1700000000+day), 0),
		Trigger:   domain.TriggerCLI,
		Config:    domain.DefaultConfig(),
		Records: []domain.DailyRecord{
			{
				Day:              1,
				PriceNoBurn:      1.0,
				PriceWithBurn:    1.0,
				RemainingSupply:  99_999_500,
				DailyBurned:      500,
				CumulativeBurned: 500,
				ServiceBurns:     []domain.ServiceBurn{{Service: "Mixer", Tokens: 500}},
			},
		},
		Summary: domain.SimulationSummary{
			HorizonDays: 1,
			TotalBurned: 500,
			FinalSupply: 99_999_500,
		},
	}
}

func TestRunStore_InsertAndGet(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	run := testRun("run_abc", 1)

	err := store.Insert(ctx, run)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "run_abc")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.RunID != run.RunID {
		t.Errorf("RunID mismatch: got %s, want %s", got.RunID, run.RunID)
	}
	if len(got.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got.Records))
	}
	if got.Records[0].DailyBurned != 500 {
		t.Errorf("DailyBurned mismatch: got %v, want 500", got.Records[0].DailyBurned)
	}
}

func TestRunStore_DuplicateKey(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	run := testRun("run_abc", 1)

	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, run)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestRunStore_NotFound(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	err = store.Delete(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestRunStore_ListNewestFirst(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := store.Insert(ctx, testRun(fmt.Sprintf("run_%d", i), i)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(result))
	}
	if result[0].RunID != "run_3" {
		t.Errorf("First result should be run_3, got %s", result[0].RunID)
	}
	if result[2].RunID != "run_1" {
		t.Errorf("Last result should be run_1, got %s", result[2].RunID)
	}
}

func TestRunStore_Delete(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	if err := store.Insert(ctx, testRun("run_abc", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.Delete(ctx, "run_abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.GetByID(ctx, "run_abc")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count 0 after delete, got %d", count)
	}
}

func TestRunStore_EvictsOldestAtCapacity(t *testing.T) {
	store := NewRunStore(2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := store.Insert(ctx, testRun(fmt.Sprintf("run_%d", i), i)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2 at capacity, got %d", count)
	}

	// The oldest run should be gone, the two newest kept.
	if _, err := store.GetByID(ctx, "run_1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected run_1 evicted, got %v", err)
	}
	if _, err := store.GetByID(ctx, "run_3"); err != nil {
		t.Errorf("Expected run_3 present, got %v", err)
	}
}

func TestRunStore_ReturnsCopies(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	if err := store.Insert(ctx, testRun("run_abc", 1)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "run_abc")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	// Mutating the returned run must not leak into the store.
	got.Records[0].DailyBurned = -1
	got.Config.Services[0].Name = "mutated"

	fresh, err := store.GetByID(ctx, "run_abc")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fresh.Records[0].DailyBurned != 500 {
		t.Errorf("Store record mutated through returned copy: %v", fresh.Records[0].DailyBurned)
	}
	if fresh.Config.Services[0].Name != "Mixer" {
		t.Errorf("Store config mutated through returned copy: %s", fresh.Config.Services[0].Name)
	}
}

func TestRunStore_ConcurrentInserts(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	numGoroutines := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = store.Insert(ctx, testRun(fmt.Sprintf("run_%d", id), id))
		}(i)
	}

	wg.Wait()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != numGoroutines {
		t.Errorf("Expected %d runs, got %d", numGoroutines, count)
	}
}

func TestRunStore_InvalidInput(t *testing.T) {
	store := NewRunStore(0)
	ctx := context.Background()

	err := store.Insert(ctx, nil)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	err = store.Insert(ctx, &domain.SimulationRun{RunID: ""})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty ID, got %v", err)
	}
}
