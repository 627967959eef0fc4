package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/northbank/supporters-api/internal/domain/competition"
	"github.com/northbank/supporters-api/internal/domain/fixture"
	"github.com/northbank/supporters-api/internal/domain/leaguetable"
	"github.com/northbank/supporters-api/internal/domain/matchresult"
	"github.com/northbank/supporters-api/internal/platform/logging"
)

// SyncPhase is one independently selectable unit of sync work.
type SyncPhase string

const (
	PhaseCompetitions SyncPhase = "competitions"
	PhaseFixtures     SyncPhase = "fixtures"
	PhaseResults      SyncPhase = "results"
	PhaseStandings    SyncPhase = "standings"
	PhaseDetails      SyncPhase = "details"
)

// AllSyncPhases returns every phase in execution order.
func AllSyncPhases() []SyncPhase {
	return []SyncPhase{PhaseCompetitions, PhaseFixtures, PhaseResults, PhaseStandings, PhaseDetails}
}

const (
	defaultUpcomingFixtureCount = 10

	// resultStatusFilter selects completed matches: full time, after
	// extra time, after penalties.
	resultStatusFilter = "FT-AET-PEN"
)

// FootballDataProvider is the outbound surface the sync pipeline needs
// from the third-party football data client.
type FootballDataProvider interface {
	TeamID() int64
	LeagueID() int64
	CurrentSeason() int
	NextFixtures(ctx context.Context, n int) ([]map[string]any, error)
	FixturesBySeason(ctx context.Context, seasonYear int, status string) ([]map[string]any, error)
	Standings(ctx context.Context, leagueID int64, seasonYear int) ([]map[string]any, error)
	TeamCompetitions(ctx context.Context, seasonYear int) ([]map[string]any, error)
	LiveFixtures(ctx context.Context) ([]map[string]any, error)
	FixtureEvents(ctx context.Context, fixtureID int64) ([]map[string]any, error)
	FixtureLineups(ctx context.Context, fixtureID int64) ([]map[string]any, error)
	FixtureStatistics(ctx context.Context, fixtureID int64) ([]map[string]any, error)
}

// SyncOptions selects what a run covers. An empty phase list means every
// phase; a zero season means the provider's current season.
type SyncOptions struct {
	Phases []SyncPhase
	Season int
}

// SyncReport summarizes a finished run.
type SyncReport struct {
	Season   int
	Started  time.Time
	Duration time.Duration
	Counts   map[SyncPhase]int
}

// SyncService sequences the sync phases against the provider and the
// entity repositories. At most one run is active at a time; a run
// triggered while another is in flight fails with ErrSyncAlreadyRunning.
type SyncService struct {
	provider      FootballDataProvider
	fixtures      fixture.Repository
	results       matchresult.Repository
	tables        leaguetable.Repository
	competitions  competition.Repository
	backfill      *DetailBackfillService
	logger        *logging.Logger
	upcomingCount int
	now           func() time.Time

	running atomic.Bool
}

func NewSyncService(
	provider FootballDataProvider,
	fixtures fixture.Repository,
	results matchresult.Repository,
	tables leaguetable.Repository,
	competitions competition.Repository,
	backfill *DetailBackfillService,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		provider:      provider,
		fixtures:      fixtures,
		results:       results,
		tables:        tables,
		competitions:  competitions,
		backfill:      backfill,
		logger:        logger,
		upcomingCount: defaultUpcomingFixtureCount,
		now:           time.Now,
	}
}

// Run executes the selected phases in the fixed order competitions,
// fixtures, results, standings, details. An empty upstream payload or a
// failed provider fetch skips that phase with a warning; the first store
// error aborts the remaining phases and fails the whole run.
func (s *SyncService) Run(ctx context.Context, opts SyncOptions) (SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return SyncReport{}, ErrSyncAlreadyRunning
	}
	defer s.running.Store(false)

	ctx, span := startUsecaseSpan(ctx, "SyncService.Run")
	defer span.End()

	phases, err := normalizePhases(opts.Phases)
	if err != nil {
		return SyncReport{}, err
	}
	seasonYear := opts.Season
	if seasonYear <= 0 {
		seasonYear = s.provider.CurrentSeason()
	}

	report := SyncReport{
		Season:  seasonYear,
		Started: s.now(),
		Counts:  make(map[SyncPhase]int, len(phases)),
	}
	s.logger.InfoContext(ctx, "football sync run started", "season", seasonYear, "phases", phaseNames(phases))

	for _, phase := range phases {
		count, err := s.runPhase(ctx, phase, seasonYear)
		if err != nil {
			report.Duration = s.now().Sub(report.Started)
			s.logger.ErrorContext(ctx, "football sync run aborted", "phase", string(phase), "season", seasonYear, "error", err)
			return report, fmt.Errorf("sync phase %s: %w", phase, err)
		}
		report.Counts[phase] = count
		s.logger.InfoContext(ctx, "football sync phase finished", "phase", string(phase), "count", count)
	}

	report.Duration = s.now().Sub(report.Started)
	s.logger.InfoContext(ctx, "football sync run finished",
		"season", seasonYear,
		"duration", report.Duration,
		"competitions", report.Counts[PhaseCompetitions],
		"fixtures", report.Counts[PhaseFixtures],
		"results", report.Counts[PhaseResults],
		"standings", report.Counts[PhaseStandings],
		"details", report.Counts[PhaseDetails],
	)
	return report, nil
}

// Running reports whether a sync run is currently in progress.
func (s *SyncService) Running() bool {
	return s.running.Load()
}

func (s *SyncService) runPhase(ctx context.Context, phase SyncPhase, seasonYear int) (int, error) {
	switch phase {
	case PhaseCompetitions:
		return s.syncCompetitions(ctx, seasonYear)
	case PhaseFixtures:
		return s.syncUpcomingFixtures(ctx, seasonYear)
	case PhaseResults:
		return s.syncResults(ctx, seasonYear)
	case PhaseStandings:
		return s.syncStandings(ctx, seasonYear)
	case PhaseDetails:
		return s.backfill.Run(ctx, 0)
	default:
		return 0, fmt.Errorf("%w: unknown sync phase %q", ErrInvalidInput, phase)
	}
}

func (s *SyncService) syncCompetitions(ctx context.Context, seasonYear int) (int, error) {
	payload, err := s.provider.TeamCompetitions(ctx, seasonYear)
	if err != nil {
		s.logger.WarnContext(ctx, "competitions fetch failed, skipping phase", "season", seasonYear, "error", err)
		return 0, nil
	}
	if len(payload) == 0 {
		s.logger.WarnContext(ctx, "no competitions returned, skipping phase", "season", seasonYear)
		return 0, nil
	}

	// Stale competitions become non-current rather than being deleted.
	if err := s.competitions.DemoteSeason(ctx, seasonYear); err != nil {
		return 0, fmt.Errorf("demote season competitions: %w", err)
	}

	count := 0
	for _, item := range payload {
		if err := s.competitions.Upsert(ctx, mapCompetitionItem(item, seasonYear)); err != nil {
			return count, fmt.Errorf("upsert competition: %w", err)
		}
		count++
	}
	return count, nil
}

func (s *SyncService) syncUpcomingFixtures(ctx context.Context, seasonYear int) (int, error) {
	payload, err := s.provider.NextFixtures(ctx, s.upcomingCount)
	if err != nil {
		s.logger.WarnContext(ctx, "upcoming fixtures fetch failed, skipping phase", "error", err)
		return 0, nil
	}
	if len(payload) == 0 {
		s.logger.WarnContext(ctx, "no upcoming fixtures returned, skipping phase")
		return 0, nil
	}

	count := 0
	for _, item := range payload {
		if err := s.fixtures.Upsert(ctx, mapFixtureItem(item, seasonYear)); err != nil {
			return count, fmt.Errorf("upsert fixture: %w", err)
		}
		count++
	}
	return count, nil
}

func (s *SyncService) syncResults(ctx context.Context, seasonYear int) (int, error) {
	payload, err := s.provider.FixturesBySeason(ctx, seasonYear, resultStatusFilter)
	if err != nil {
		s.logger.WarnContext(ctx, "finished fixtures fetch failed, skipping phase", "season", seasonYear, "error", err)
		return 0, nil
	}
	if len(payload) == 0 {
		s.logger.WarnContext(ctx, "no finished fixtures returned, skipping phase", "season", seasonYear)
		return 0, nil
	}

	teamID := s.provider.TeamID()
	count := 0
	for _, item := range payload {
		if err := s.results.Upsert(ctx, mapMatchResultItem(item, teamID, seasonYear)); err != nil {
			return count, fmt.Errorf("upsert match result: %w", err)
		}
		count++
	}
	return count, nil
}

func (s *SyncService) syncStandings(ctx context.Context, seasonYear int) (int, error) {
	leagueID := s.provider.LeagueID()
	payload, err := s.provider.Standings(ctx, leagueID, seasonYear)
	if err != nil {
		s.logger.WarnContext(ctx, "standings fetch failed, skipping phase", "league_id", leagueID, "season", seasonYear, "error", err)
		return 0, nil
	}

	rows, ok := unwrapStandingRows(payload)
	if !ok {
		s.logger.WarnContext(ctx, "standings payload missing expected nesting, skipping phase", "league_id", leagueID, "season", seasonYear)
		return 0, nil
	}

	count := 0
	for _, row := range rows {
		if err := s.tables.Upsert(ctx, mapStandingRow(row, leagueID, seasonYear)); err != nil {
			return count, fmt.Errorf("upsert standing row: %w", err)
		}
		count++
	}
	return count, nil
}

// normalizePhases applies the default-to-all policy, deduplicates and
// restores the fixed execution order.
func normalizePhases(selected []SyncPhase) ([]SyncPhase, error) {
	if len(selected) == 0 {
		return AllSyncPhases(), nil
	}

	known := make(map[SyncPhase]bool, len(selected))
	for _, phase := range selected {
		switch phase {
		case PhaseCompetitions, PhaseFixtures, PhaseResults, PhaseStandings, PhaseDetails:
			known[phase] = true
		default:
			return nil, fmt.Errorf("%w: unknown sync phase %q", ErrInvalidInput, phase)
		}
	}

	out := make([]SyncPhase, 0, len(known))
	for _, phase := range AllSyncPhases() {
		if known[phase] {
			out = append(out, phase)
		}
	}
	return out, nil
}

// ParseSyncPhase converts a wire/CLI value into a SyncPhase.
func ParseSyncPhase(raw string) (SyncPhase, error) {
	phase := SyncPhase(raw)
	switch phase {
	case PhaseCompetitions, PhaseFixtures, PhaseResults, PhaseStandings, PhaseDetails:
		return phase, nil
	default:
		return "", fmt.Errorf("%w: unknown sync phase %q", ErrInvalidInput, raw)
	}
}

func phaseNames(phases []SyncPhase) []string {
	out := make([]string, 0, len(phases))
	for _, phase := range phases {
		out = append(out, string(phase))
	}
	return out
}
