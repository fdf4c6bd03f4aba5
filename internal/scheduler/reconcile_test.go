package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/usecase"
)

type stubSeasons struct {
	items []season.Season
	err   error
}

func (s stubSeasons) ListSeasons(context.Context) ([]season.Season, error) {
	return s.items, s.err
}

type recordingReconciler struct {
	mu      sync.Mutex
	calls   []string
	failFor string
	ran     chan struct{}
}

func (r *recordingReconciler) ReconcilePaymentStatuses(_ context.Context, seasonID string, _ int) (usecase.ReconcileResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, seasonID)
	r.mu.Unlock()
	if r.ran != nil {
		select {
		case r.ran <- struct{}{}:
		default:
		}
	}
	if seasonID == r.failFor {
		return usecase.ReconcileResult{}, errors.New("boom")
	}
	return usecase.ReconcileResult{SeasonID: seasonID, Checked: 2, Updated: 1}, nil
}

func TestRunReconcile_SkipsInactiveAndFailedSeasons(t *testing.T) {
	seasons := stubSeasons{items: []season.Season{
		{ID: "s1", IsActive: true},
		{ID: "s2", IsActive: false},
		{ID: "s3", IsActive: true},
	}}
	reconciler := &recordingReconciler{failFor: "s3"}

	results := RunReconcile(context.Background(), seasons, reconciler, 2, logging.NewNop())

	if len(reconciler.calls) != 2 || reconciler.calls[0] != "s1" || reconciler.calls[1] != "s3" {
		t.Fatalf("unexpected reconcile calls: %v", reconciler.calls)
	}
	if len(results) != 1 || results[0].SeasonID != "s1" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRunReconcile_ListFailure(t *testing.T) {
	reconciler := &recordingReconciler{}
	results := RunReconcile(context.Background(), stubSeasons{err: errors.New("down")}, reconciler, 1, logging.NewNop())
	if results != nil || len(reconciler.calls) != 0 {
		t.Fatalf("expected no work when seasons cannot be listed")
	}
}

func TestRegisterReconcileJob_RunsOnSchedule(t *testing.T) {
	svc, err := New(logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	defer func() { _ = svc.Stop() }()

	reconciler := &recordingReconciler{ran: make(chan struct{}, 1)}
	err = RegisterReconcileJob(svc, stubSeasons{items: []season.Season{{ID: "s1", IsActive: true}}}, reconciler, ReconcileConfig{
		Interval: 20 * time.Millisecond,
		Workers:  1,
	})
	if err != nil {
		t.Fatalf("register job: %v", err)
	}
	svc.Start()

	select {
	case <-reconciler.ran:
	case <-time.After(2 * time.Second):
		t.Fatalf("reconcile job did not run")
	}
}

func TestAddIntervalJob_Validation(t *testing.T) {
	svc, err := New(logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	defer func() { _ = svc.Stop() }()

	if _, err := svc.AddIntervalJob(" ", time.Second, func() {}); !errors.Is(err, ErrEmptyJobName) {
		t.Fatalf("expected ErrEmptyJobName, got %v", err)
	}
	if _, err := svc.AddIntervalJob("job", 0, func() {}); !errors.Is(err, ErrEmptyInterval) {
		t.Fatalf("expected ErrEmptyInterval, got %v", err)
	}
}
