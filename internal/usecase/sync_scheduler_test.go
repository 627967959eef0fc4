package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/northbank/supporters-api/internal/platform/logging"
)

type countingRunner struct {
	runs  atomic.Int32
	panic bool
}

func (r *countingRunner) Run(context.Context, SyncOptions) (SyncReport, error) {
	r.runs.Add(1)
	if r.panic {
		panic("mapper exploded")
	}
	return SyncReport{Season: 2025}, nil
}

func TestSyncSchedulerRunsOnInterval(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{}
	scheduler := NewSyncScheduler(runner, 10*time.Millisecond, logging.NewNop())
	scheduler.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for runner.runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 runs, got %d", runner.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	scheduler.Stop()

	after := runner.runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runner.runs.Load() != after {
		t.Fatal("scheduler kept running after Stop")
	}
}

func TestSyncSchedulerSurvivesPanics(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{panic: true}
	scheduler := NewSyncScheduler(runner, 10*time.Millisecond, logging.NewNop())
	scheduler.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for runner.runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected the loop to survive a panic, got %d runs", runner.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	scheduler.Stop()
}
