package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/northbank/supporters-api/internal/domain/matchresult"
	"github.com/northbank/supporters-api/internal/infrastructure/repository/memory"
	"github.com/northbank/supporters-api/internal/platform/logging"
	"github.com/northbank/supporters-api/internal/usecase"
)

const testSyncToken = "test-token"

type fakeProvider struct {
	block chan struct{}
}

func (p *fakeProvider) TeamID() int64      { return 42 }
func (p *fakeProvider) LeagueID() int64    { return 39 }
func (p *fakeProvider) CurrentSeason() int { return 2025 }

func (p *fakeProvider) NextFixtures(context.Context, int) ([]map[string]any, error) {
	return nil, nil
}

func (p *fakeProvider) FixturesBySeason(context.Context, int, string) ([]map[string]any, error) {
	return nil, nil
}

func (p *fakeProvider) Standings(context.Context, int64, int) ([]map[string]any, error) {
	return nil, nil
}

func (p *fakeProvider) TeamCompetitions(context.Context, int) ([]map[string]any, error) {
	if p.block != nil {
		<-p.block
	}
	return nil, nil
}

func (p *fakeProvider) LiveFixtures(context.Context) ([]map[string]any, error) {
	return []map[string]any{{"fixture": map[string]any{"id": float64(1)}}}, nil
}

func (p *fakeProvider) FixtureEvents(context.Context, int64) ([]map[string]any, error) {
	return nil, nil
}

func (p *fakeProvider) FixtureLineups(context.Context, int64) ([]map[string]any, error) {
	return nil, nil
}

func (p *fakeProvider) FixtureStatistics(context.Context, int64) ([]map[string]any, error) {
	return nil, nil
}

type apiHarness struct {
	router  http.Handler
	sync    *usecase.SyncService
	results *memory.MatchResultRepository
}

func newAPIHarness(provider *fakeProvider) *apiHarness {
	fixtures := memory.NewFixtureRepository()
	results := memory.NewMatchResultRepository()
	tables := memory.NewLeagueTableRepository()
	competitions := memory.NewCompetitionRepository()

	backfill := usecase.NewDetailBackfillService(provider, results, nil, logging.NewNop(), 0)
	syncService := usecase.NewSyncService(provider, fixtures, results, tables, competitions, backfill, logging.NewNop())
	queryService := usecase.NewFootballQueryService(provider, fixtures, results, tables, competitions)

	handler := NewHandler(queryService, syncService, logging.NewNop())
	router := NewRouter(handler, logging.NewNop(), []string{"*"}, testSyncToken)
	return &apiHarness{router: router, sync: syncService, results: results}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) googleResponseEnvelope {
	t.Helper()
	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListResults(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	seed := matchresult.MatchResult{
		FixtureID:  600,
		Date:       time.Date(2025, time.September, 20, 16, 30, 0, 0, time.UTC),
		Season:     2025,
		HomeTeamID: 42,
		HomeTeam:   "Arsenal",
		AwayTeamID: 50,
		AwayTeam:   "Manchester City",
		HomeGoals:  3,
		AwayGoals:  1,
		Result:     matchresult.ResultWin,
	}
	if err := h.results.Upsert(context.Background(), seed); err != nil {
		t.Fatalf("seed result: %v", err)
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/results?season=2025", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	items, ok := envelope.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one result item, got %v", envelope.Data)
	}
}

func TestListResultsRejectsBadSeason(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/results?season=notayear", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestTriggerSyncRequiresToken(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/sync", nil)
	req.Header.Set("X-Internal-Sync-Token", "wrong")
	h.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTriggerSyncAccepted(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/sync", strings.NewReader(`{"phases":["standings"]}`))
	req.Header.Set("X-Internal-Sync-Token", testSyncToken)
	h.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestTriggerSyncRejectsUnknownPhase(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/sync", strings.NewReader(`{"phases":["players"]}`))
	req.Header.Set("X-Internal-Sync-Token", testSyncToken)
	h.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTriggerSyncConflictWhileRunning(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	provider := &fakeProvider{block: release}
	h := newAPIHarness(provider)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = h.sync.Run(context.Background(), usecase.SyncOptions{Phases: []usecase.SyncPhase{usecase.PhaseCompetitions}})
	}()
	<-started
	for !h.sync.Running() {
		time.Sleep(time.Millisecond)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/sync", nil)
	req.Header.Set("X-Internal-Sync-Token", testSyncToken)
	h.router.ServeHTTP(rec, req)
	close(release)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Status != "ABORTED" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
}

func TestListLiveFixturesProxiesProvider(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/fixtures/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	items, ok := envelope.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one live fixture, got %v", envelope.Data)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	h := newAPIHarness(&fakeProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/results", nil)
	req.Header.Set("Origin", "https://supporters.example")
	h.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
}
