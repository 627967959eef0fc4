package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/northbank/supporters-api/internal/domain/competition"
	"github.com/northbank/supporters-api/internal/domain/matchresult"
	"github.com/northbank/supporters-api/internal/infrastructure/repository/memory"
	"github.com/northbank/supporters-api/internal/platform/logging"
)

type stubProvider struct {
	mu sync.Mutex

	teamID   int64
	leagueID int64
	season   int

	calls []string

	nextFixtures   []map[string]any
	seasonFixtures []map[string]any
	standings      []map[string]any
	competitions   []map[string]any
	live           []map[string]any
	events         []map[string]any
	lineups        []map[string]any
	statistics     []map[string]any

	errNextFixtures   error
	errSeasonFixtures error
	errStandings      error
	errCompetitions   error
	errEvents         error
	errLineups        error
	errStatistics     error

	lastStatusFilter string

	// blockCompetitions, when set, makes the competitions call wait until
	// the channel is closed. Used by the overlap test.
	blockCompetitions chan struct{}
}

func (p *stubProvider) record(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, name)
}

func (p *stubProvider) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *stubProvider) TeamID() int64      { return p.teamID }
func (p *stubProvider) LeagueID() int64    { return p.leagueID }
func (p *stubProvider) CurrentSeason() int { return p.season }

func (p *stubProvider) NextFixtures(_ context.Context, _ int) ([]map[string]any, error) {
	p.record("NextFixtures")
	return p.nextFixtures, p.errNextFixtures
}

func (p *stubProvider) FixturesBySeason(_ context.Context, _ int, status string) ([]map[string]any, error) {
	p.record("FixturesBySeason")
	p.mu.Lock()
	p.lastStatusFilter = status
	p.mu.Unlock()
	return p.seasonFixtures, p.errSeasonFixtures
}

func (p *stubProvider) Standings(_ context.Context, _ int64, _ int) ([]map[string]any, error) {
	p.record("Standings")
	return p.standings, p.errStandings
}

func (p *stubProvider) TeamCompetitions(_ context.Context, _ int) ([]map[string]any, error) {
	p.record("TeamCompetitions")
	if p.blockCompetitions != nil {
		<-p.blockCompetitions
	}
	return p.competitions, p.errCompetitions
}

func (p *stubProvider) LiveFixtures(_ context.Context) ([]map[string]any, error) {
	p.record("LiveFixtures")
	return p.live, nil
}

func (p *stubProvider) FixtureEvents(_ context.Context, _ int64) ([]map[string]any, error) {
	p.record("FixtureEvents")
	return p.events, p.errEvents
}

func (p *stubProvider) FixtureLineups(_ context.Context, _ int64) ([]map[string]any, error) {
	p.record("FixtureLineups")
	return p.lineups, p.errLineups
}

func (p *stubProvider) FixtureStatistics(_ context.Context, _ int64) ([]map[string]any, error) {
	p.record("FixtureStatistics")
	return p.statistics, p.errStatistics
}

type noopLimiter struct{}

func (noopLimiter) Wait(context.Context) error { return nil }

type syncHarness struct {
	provider     *stubProvider
	fixtures     *memory.FixtureRepository
	results      *memory.MatchResultRepository
	tables       *memory.LeagueTableRepository
	competitions *memory.CompetitionRepository
	service      *SyncService
}

func newSyncHarness(provider *stubProvider) *syncHarness {
	fixtures := memory.NewFixtureRepository()
	results := memory.NewMatchResultRepository()
	tables := memory.NewLeagueTableRepository()
	competitions := memory.NewCompetitionRepository()
	backfill := NewDetailBackfillService(provider, results, noopLimiter{}, logging.NewNop(), 0)
	service := NewSyncService(provider, fixtures, results, tables, competitions, backfill, logging.NewNop())
	return &syncHarness{
		provider:     provider,
		fixtures:     fixtures,
		results:      results,
		tables:       tables,
		competitions: competitions,
		service:      service,
	}
}

func finishedFixtureItem(fixtureID, homeID, awayID int64, homeGoals, awayGoals int) map[string]any {
	return map[string]any{
		"fixture": map[string]any{
			"id":       float64(fixtureID),
			"date":     "2025-09-13T15:00:00+00:00",
			"timezone": "UTC",
			"referee":  "M. Oliver",
			"venue":    map[string]any{"name": "Emirates Stadium"},
			"status":   map[string]any{"long": "Match Finished", "short": "FT", "elapsed": float64(90)},
		},
		"league": map[string]any{
			"id":     float64(39),
			"name":   "Premier League",
			"season": float64(2025),
			"round":  "Regular Season - 4",
		},
		"teams": map[string]any{
			"home": map[string]any{"id": float64(homeID), "name": "Home FC", "logo": "https://img/home.png"},
			"away": map[string]any{"id": float64(awayID), "name": "Away FC", "logo": "https://img/away.png"},
		},
		"goals": map[string]any{"home": float64(homeGoals), "away": float64(awayGoals)},
		"score": map[string]any{
			"halftime": map[string]any{"home": float64(1), "away": float64(0)},
			"fulltime": map[string]any{"home": float64(homeGoals), "away": float64(awayGoals)},
		},
	}
}

func upcomingFixtureItem(fixtureID int64) map[string]any {
	return map[string]any{
		"fixture": map[string]any{
			"id":     float64(fixtureID),
			"date":   "2025-10-04T14:00:00+00:00",
			"status": map[string]any{"long": "Not Started", "short": "NS"},
		},
		"league": map[string]any{"id": float64(39), "name": "Premier League", "season": float64(2025)},
		"teams": map[string]any{
			"home": map[string]any{"id": float64(42), "name": "Arsenal"},
			"away": map[string]any{"id": float64(50), "name": "Manchester City"},
		},
	}
}

func standingsPayload(teamID int64, rank, points int) []map[string]any {
	return []map[string]any{
		{
			"league": map[string]any{
				"id":   float64(39),
				"name": "Premier League",
				"standings": []any{
					[]any{
						map[string]any{
							"rank":   float64(rank),
							"points": float64(points),
							"team":   map[string]any{"id": float64(teamID), "name": "Arsenal"},
							"all": map[string]any{
								"played": float64(4), "win": float64(3), "draw": float64(1), "lose": float64(0),
								"goals": map[string]any{"for": float64(9), "against": float64(2)},
							},
						},
					},
				},
			},
		},
	}
}

func competitionItem(leagueID int64, name string) map[string]any {
	return map[string]any{
		"league":  map[string]any{"id": float64(leagueID), "name": name, "type": "League", "logo": "https://img/league.png"},
		"country": map[string]any{"name": "England", "code": "GB", "flag": "https://img/gb.svg"},
		"seasons": []any{
			map[string]any{"year": float64(2025), "start": "2025-08-09", "end": "2026-05-24", "current": true},
		},
	}
}

func TestSyncServiceRunAllPhasesInOrder(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:         42,
		leagueID:       39,
		season:         2025,
		nextFixtures:   []map[string]any{upcomingFixtureItem(900)},
		seasonFixtures: []map[string]any{finishedFixtureItem(555, 42, 50, 3, 1)},
		standings:      standingsPayload(42, 1, 10),
		competitions:   []map[string]any{competitionItem(39, "Premier League")},
		events:         []map[string]any{{"type": "Goal"}},
	}
	h := newSyncHarness(provider)

	report, err := h.service.Run(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Season != 2025 {
		t.Fatalf("expected season 2025, got %d", report.Season)
	}
	for _, phase := range AllSyncPhases() {
		if _, ok := report.Counts[phase]; !ok {
			t.Fatalf("expected a count for phase %s", phase)
		}
	}

	calls := provider.recorded()
	wantPrefix := []string{"TeamCompetitions", "NextFixtures", "FixturesBySeason", "Standings"}
	if len(calls) < len(wantPrefix) {
		t.Fatalf("expected at least %d provider calls, got %v", len(wantPrefix), calls)
	}
	for i, want := range wantPrefix {
		if calls[i] != want {
			t.Fatalf("call %d: expected %s, got %s (all: %v)", i, want, calls[i], calls)
		}
	}

	if provider.lastStatusFilter != "FT-AET-PEN" {
		t.Fatalf("expected finished-status filter, got %q", provider.lastStatusFilter)
	}
}

func TestSyncServiceRunPhaseSelectionRestoresOrder(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:       42,
		leagueID:     39,
		season:       2025,
		standings:    standingsPayload(42, 1, 10),
		competitions: []map[string]any{competitionItem(39, "Premier League")},
	}
	h := newSyncHarness(provider)

	// Requested out of order and with a duplicate.
	_, err := h.service.Run(context.Background(), SyncOptions{
		Phases: []SyncPhase{PhaseStandings, PhaseCompetitions, PhaseStandings},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	calls := provider.recorded()
	want := []string{"TeamCompetitions", "Standings"}
	if len(calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, calls)
		}
	}
}

func TestSyncServiceRunRejectsUnknownPhase(t *testing.T) {
	t.Parallel()

	h := newSyncHarness(&stubProvider{teamID: 42, leagueID: 39, season: 2025})

	_, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{"players"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSyncServiceRunEmptyPayloadSkipsPhase(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:       42,
		leagueID:     39,
		season:       2025,
		nextFixtures: []map[string]any{upcomingFixtureItem(901)},
	}
	h := newSyncHarness(provider)

	report, err := h.service.Run(context.Background(), SyncOptions{
		Phases: []SyncPhase{PhaseCompetitions, PhaseFixtures},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Counts[PhaseCompetitions] != 0 {
		t.Fatalf("expected empty competitions phase to count 0, got %d", report.Counts[PhaseCompetitions])
	}
	if report.Counts[PhaseFixtures] != 1 {
		t.Fatalf("expected fixtures phase to still run, got count %d", report.Counts[PhaseFixtures])
	}
}

func TestSyncServiceRunSkipsFailedFetch(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:            42,
		leagueID:          39,
		season:            2025,
		competitions:      []map[string]any{competitionItem(39, "Premier League")},
		nextFixtures:      []map[string]any{upcomingFixtureItem(902)},
		errSeasonFixtures: errors.New("upstream 500"),
		standings:         standingsPayload(42, 1, 10),
	}
	h := newSyncHarness(provider)

	report, err := h.service.Run(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("a failed fetch must not fail the run: %v", err)
	}
	if report.Counts[PhaseResults] != 0 {
		t.Fatalf("expected failed results fetch to count 0, got %d", report.Counts[PhaseResults])
	}
	if report.Counts[PhaseStandings] != 1 {
		t.Fatalf("expected standings phase to still run, got count %d", report.Counts[PhaseStandings])
	}

	sawStandings := false
	for _, call := range provider.recorded() {
		if call == "Standings" {
			sawStandings = true
		}
	}
	if !sawStandings {
		t.Fatal("standings phase should run after a failed results fetch")
	}
}

type failingResultStore struct {
	*memory.MatchResultRepository
	err error
}

func (s *failingResultStore) Upsert(context.Context, matchresult.MatchResult) error {
	return s.err
}

func TestSyncServiceRunAbortsOnStoreError(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:         42,
		leagueID:       39,
		season:         2025,
		seasonFixtures: []map[string]any{finishedFixtureItem(557, 42, 50, 1, 0)},
		standings:      standingsPayload(42, 1, 10),
	}
	storeErr := errors.New("store down")
	results := &failingResultStore{MatchResultRepository: memory.NewMatchResultRepository(), err: storeErr}
	backfill := NewDetailBackfillService(provider, results, noopLimiter{}, logging.NewNop(), 0)
	service := NewSyncService(provider,
		memory.NewFixtureRepository(), results,
		memory.NewLeagueTableRepository(), memory.NewCompetitionRepository(),
		backfill, logging.NewNop())

	_, err := service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseResults, PhaseStandings}})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error to fail the run, got %v", err)
	}

	for _, call := range provider.recorded() {
		if call == "Standings" {
			t.Fatal("standings phase should not run after a store write failed")
		}
	}
}

func TestSyncServiceRunRejectsOverlap(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	provider := &stubProvider{
		teamID:            42,
		leagueID:          39,
		season:            2025,
		blockCompetitions: release,
	}
	h := newSyncHarness(provider)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseCompetitions}})
		done <- err
	}()

	<-started
	for !h.service.Running() {
		time.Sleep(time.Millisecond)
	}

	if _, err := h.service.Run(context.Background(), SyncOptions{}); !errors.Is(err, ErrSyncAlreadyRunning) {
		t.Fatalf("expected ErrSyncAlreadyRunning, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Once the first run finishes a new one is accepted again.
	if _, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseCompetitions}}); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestSyncServiceRunDemotesStaleCompetitions(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:       42,
		leagueID:     39,
		season:       2025,
		competitions: []map[string]any{competitionItem(39, "Premier League")},
	}
	h := newSyncHarness(provider)

	stale := competition.Competition{LeagueID: 99, Name: "Cup We Left", Season: 2025, IsCurrent: true}
	if err := h.competitions.Upsert(context.Background(), stale); err != nil {
		t.Fatalf("seed competition: %v", err)
	}

	if _, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseCompetitions}}); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, ok := h.competitions.Get(99)
	if !ok {
		t.Fatal("stale competition should survive demotion")
	}
	if got.IsCurrent {
		t.Fatal("stale competition should no longer be current")
	}

	fresh, ok := h.competitions.Get(39)
	if !ok || !fresh.IsCurrent {
		t.Fatalf("synced competition should be current, got %+v ok=%v", fresh, ok)
	}
}

func TestSyncServiceRunSkipsMalformedStandings(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:    42,
		leagueID:  39,
		season:    2025,
		standings: []map[string]any{{"league": map[string]any{"id": float64(39)}}},
	}
	h := newSyncHarness(provider)

	report, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseStandings}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Counts[PhaseStandings] != 0 {
		t.Fatalf("expected malformed standings to be skipped, got count %d", report.Counts[PhaseStandings])
	}
	if h.tables.Len() != 0 {
		t.Fatalf("expected no standing rows, got %d", h.tables.Len())
	}
}

func TestSyncServiceRunDerivesResultEndToEnd(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:         42,
		leagueID:       39,
		season:         2025,
		seasonFixtures: []map[string]any{finishedFixtureItem(555, 42, 50, 3, 1)},
	}
	h := newSyncHarness(provider)

	if _, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseResults}}); err != nil {
		t.Fatalf("run: %v", err)
	}

	stored, ok := h.results.Get(555)
	if !ok {
		t.Fatal("expected match result 555 to be stored")
	}
	if stored.Result != "W" {
		t.Fatalf("expected tracked-team win, got %q", stored.Result)
	}
	if stored.Score() != "3 - 1" {
		t.Fatalf("expected score 3 - 1, got %q", stored.Score())
	}
	if stored.VenueType(42) != "H" {
		t.Fatalf("expected home venue, got %q", stored.VenueType(42))
	}
}

func TestSyncServiceRunIsIdempotent(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		teamID:         42,
		leagueID:       39,
		season:         2025,
		seasonFixtures: []map[string]any{finishedFixtureItem(556, 40, 42, 2, 2)},
		events:         []map[string]any{{"type": "Goal", "detail": "Normal Goal"}},
	}
	h := newSyncHarness(provider)

	// First pass stores the result and backfills its details.
	if _, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseResults, PhaseDetails}}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	first, ok := h.results.Get(556)
	if !ok {
		t.Fatal("expected match result 556 to be stored")
	}
	if !first.DetailsFetched {
		t.Fatal("expected details to be fetched after first run")
	}
	if len(first.Events) == 0 {
		t.Fatal("expected events blob after first run")
	}

	// Re-syncing results must not clobber backfilled details.
	if _, err := h.service.Run(context.Background(), SyncOptions{Phases: []SyncPhase{PhaseResults}}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	second, _ := h.results.Get(556)
	if !second.DetailsFetched {
		t.Fatal("re-sync cleared the details_fetched flag")
	}
	if string(second.Events) != string(first.Events) {
		t.Fatal("re-sync changed the stored events blob")
	}
	if h.results.Len() != 1 {
		t.Fatalf("expected a single stored row, got %d", h.results.Len())
	}
}
