package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/northbank/supporters-api/internal/platform/logging"
)

const defaultSyncInterval = 6 * time.Hour

// SyncRunner is the orchestrator surface the scheduler drives.
type SyncRunner interface {
	Run(ctx context.Context, opts SyncOptions) (SyncReport, error)
}

// SyncScheduler triggers a full sync run on a fixed interval. Overlap
// prevention lives in the orchestrator; a tick that lands while a run is
// still active logs a skip and waits for the next tick.
type SyncScheduler struct {
	runner   SyncRunner
	logger   *logging.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSyncScheduler(runner SyncRunner, interval time.Duration, logger *logging.Logger) *SyncScheduler {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncScheduler{
		runner:   runner,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the schedule loop in the background. The first run
// happens one interval after Start, not immediately.
func (s *SyncScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("sync scheduler started", "interval", s.interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (s *SyncScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *SyncScheduler) runOnce(ctx context.Context) {
	var catcher panics.Catcher
	catcher.Try(func() {
		report, err := s.runner.Run(ctx, SyncOptions{})
		switch {
		case errors.Is(err, ErrSyncAlreadyRunning):
			s.logger.WarnContext(ctx, "skipping scheduled sync, previous run still active")
		case err != nil:
			s.logger.ErrorContext(ctx, "scheduled sync failed", "error", err)
		default:
			s.logger.InfoContext(ctx, "scheduled sync finished", "season", report.Season, "duration", report.Duration)
		}
	})
	if recovered := catcher.Recovered(); recovered != nil {
		s.logger.ErrorContext(ctx, "scheduled sync panicked", "panic", recovered.String())
	}
}
