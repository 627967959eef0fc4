package usecase

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/northbank/supporters-api/internal/domain/matchresult"
	"github.com/northbank/supporters-api/internal/platform/logging"
	"github.com/northbank/supporters-api/internal/platform/resilience"
)

const (
	defaultDetailFetchLimit = 20
	defaultDetailFetchDelay = 250 * time.Millisecond
)

// RateLimiter throttles successive provider calls.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// DetailBackfillService enriches already-synced match results with the
// three fixture sub-resources (events, lineups, statistics). Rows are
// processed strictly one at a time with an inter-row delay; a missing
// sub-resource is stored as null and the row is still marked fetched, so
// a permanently unavailable resource is not retried forever.
type DetailBackfillService struct {
	provider FootballDataProvider
	results  matchresult.Repository
	limiter  RateLimiter
	logger   *logging.Logger
	limit    int
}

func NewDetailBackfillService(
	provider FootballDataProvider,
	results matchresult.Repository,
	limiter RateLimiter,
	logger *logging.Logger,
	limit int,
) *DetailBackfillService {
	if limiter == nil {
		limiter = resilience.NewFixedDelayLimiter(defaultDetailFetchDelay)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if limit <= 0 {
		limit = defaultDetailFetchLimit
	}
	return &DetailBackfillService{
		provider: provider,
		results:  results,
		limiter:  limiter,
		logger:   logger,
		limit:    limit,
	}
}

// Run backfills up to limit pending rows, most recent match first, and
// returns the number of rows processed. A non-positive limit uses the
// service default.
func (s *DetailBackfillService) Run(ctx context.Context, limit int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "DetailBackfillService.Run")
	defer span.End()

	if limit <= 0 {
		limit = s.limit
	}

	rows, err := s.results.ListPendingDetails(ctx, s.provider.TeamID(), limit)
	if err != nil {
		return 0, fmt.Errorf("list pending details: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	processed := 0
	for _, row := range rows {
		details := matchresult.Details{
			Events:     s.fetchDetailBlob(ctx, "events", row.FixtureID, s.provider.FixtureEvents),
			Lineups:    s.fetchDetailBlob(ctx, "lineups", row.FixtureID, s.provider.FixtureLineups),
			Statistics: s.fetchDetailBlob(ctx, "statistics", row.FixtureID, s.provider.FixtureStatistics),
		}
		if err := s.results.SaveDetails(ctx, row.FixtureID, details); err != nil {
			return processed, fmt.Errorf("save details fixture_id=%d: %w", row.FixtureID, err)
		}
		processed++

		if err := s.limiter.Wait(ctx); err != nil {
			return processed, err
		}
	}

	s.logger.InfoContext(ctx, "match detail backfill finished", "processed", processed)
	return processed, nil
}

// fetchDetailBlob returns the sub-resource payload as a JSON blob, or
// nil when the provider has nothing or the fetch fails.
func (s *DetailBackfillService) fetchDetailBlob(
	ctx context.Context,
	resource string,
	fixtureID int64,
	fetch func(context.Context, int64) ([]map[string]any, error),
) []byte {
	payload, err := fetch(ctx, fixtureID)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture detail fetch failed, storing null", "resource", resource, "fixture_id", fixtureID, "error", err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture detail encode failed, storing null", "resource", resource, "fixture_id", fixtureID, "error", err)
		return nil
	}
	return raw
}
