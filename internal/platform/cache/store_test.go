package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "value", nil
	}

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC))
	store := NewStoreWithClock(time.Minute, clock)
	store.Set(context.Background(), "season:list", []string{"s1"})

	if _, ok := store.Get(context.Background(), "season:list"); !ok {
		t.Fatalf("expected fresh entry")
	}

	clock.Advance(61 * time.Second)
	if _, ok := store.Get(context.Background(), "season:list"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "category:division:d1", 1)
	store.Set(ctx, "category:id:c1", 2)
	store.Set(ctx, "division:id:d1", 3)

	store.DeletePrefix(ctx, "category:")

	if _, ok := store.Get(ctx, "category:id:c1"); ok {
		t.Fatalf("expected category keys removed")
	}
	if _, ok := store.Get(ctx, "division:id:d1"); !ok {
		t.Fatalf("expected division key kept")
	}
}

func TestStore_GetOrLoad_InvalidationDuringLoadSkipsCaching(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	value, err := store.GetOrLoad(ctx, "category:division:d1", func(ctx context.Context) (any, error) {
		// A write lands while the read is in flight.
		store.DeletePrefix(ctx, "category:")
		return "stale", nil
	})
	if err != nil {
		t.Fatalf("get or load: %v", err)
	}
	if value != "stale" {
		t.Fatalf("caller should still receive its load, got %v", value)
	}
	if _, ok := store.Get(ctx, "category:division:d1"); ok {
		t.Fatalf("load started before invalidation must not be cached")
	}

	value, err = store.GetOrLoad(ctx, "category:division:d1", func(context.Context) (any, error) {
		return "fresh", nil
	})
	if err != nil || value != "fresh" {
		t.Fatalf("expected fresh load, got %v %v", value, err)
	}
	if cached, ok := store.Get(ctx, "category:division:d1"); !ok || cached != "fresh" {
		t.Fatalf("expected fresh value cached, got %v %v", cached, ok)
	}
}

func TestLoad_TypedAndErrorsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls int

	_, err := Load(ctx, store, "k", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("down")
	})
	if err == nil {
		t.Fatalf("expected loader error")
	}

	got, err := Load(ctx, store, "k", func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("expected 42, got %d err=%v", got, err)
	}
	if calls != 2 {
		t.Fatalf("expected failed load not to be cached, calls=%d", calls)
	}

	if _, err := Load(ctx, store, "k", func(context.Context) (string, error) { return "", nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
