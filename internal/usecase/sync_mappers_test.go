package usecase

import (
	"testing"
	"time"
)

func TestMapFixtureItemDefaults(t *testing.T) {
	t.Parallel()

	got := mapFixtureItem(map[string]any{}, 2025)

	if got.FixtureID != 0 {
		t.Fatalf("expected zero fixture id, got %d", got.FixtureID)
	}
	if got.Timezone != "UTC" {
		t.Fatalf("expected UTC default timezone, got %q", got.Timezone)
	}
	if got.Season != 2025 {
		t.Fatalf("expected fallback season, got %d", got.Season)
	}
	if got.Venue != nil || got.Referee != nil || got.Round != nil {
		t.Fatal("expected optional fields to default to nil")
	}
	if !got.Date.IsZero() {
		t.Fatalf("expected zero date, got %s", got.Date)
	}
}

func TestMapFixtureItemFullPayload(t *testing.T) {
	t.Parallel()

	got := mapFixtureItem(finishedFixtureItem(555, 42, 50, 3, 1), 2024)

	if got.FixtureID != 555 {
		t.Fatalf("expected fixture id 555, got %d", got.FixtureID)
	}
	if got.Season != 2025 {
		t.Fatalf("payload season should win over fallback, got %d", got.Season)
	}
	if got.Venue == nil || *got.Venue != "Emirates Stadium" {
		t.Fatalf("unexpected venue: %v", got.Venue)
	}
	if got.Elapsed == nil || *got.Elapsed != 90 {
		t.Fatalf("unexpected elapsed: %v", got.Elapsed)
	}
	want := time.Date(2025, time.September, 13, 15, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected date %s, got %s", want, got.Date)
	}
}

func TestMapMatchResultItemDerivesOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		homeID     int64
		awayID     int64
		homeGoals  int
		awayGoals  int
		wantResult string
	}{
		{"home win for tracked team", 42, 50, 3, 1, "W"},
		{"away win for tracked team", 50, 42, 0, 2, "W"},
		{"home loss for tracked team", 42, 50, 1, 2, "L"},
		{"draw", 42, 50, 2, 2, "D"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			item := finishedFixtureItem(777, tc.homeID, tc.awayID, tc.homeGoals, tc.awayGoals)
			got := mapMatchResultItem(item, 42, 2025)
			if got.Result != tc.wantResult {
				t.Fatalf("expected %q, got %q", tc.wantResult, got.Result)
			}
		})
	}
}

func TestMapMatchResultItemMissingGoalsDefaultToDraw(t *testing.T) {
	t.Parallel()

	item := map[string]any{
		"fixture": map[string]any{"id": float64(778)},
		"teams": map[string]any{
			"home": map[string]any{"id": float64(42)},
			"away": map[string]any{"id": float64(50)},
		},
	}
	got := mapMatchResultItem(item, 42, 2025)

	if got.HomeGoals != 0 || got.AwayGoals != 0 {
		t.Fatalf("expected defaulted goals 0-0, got %d-%d", got.HomeGoals, got.AwayGoals)
	}
	if got.Result != "D" {
		t.Fatalf("defaulted goals must derive a draw, got %q", got.Result)
	}
	if got.HalftimeHome != nil || got.PenaltyAway != nil {
		t.Fatal("absent score breakdowns must stay nil")
	}
}

func TestMapStandingRow(t *testing.T) {
	t.Parallel()

	rows, ok := unwrapStandingRows(standingsPayload(42, 1, 10))
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one standing row, ok=%v len=%d", ok, len(rows))
	}

	got := mapStandingRow(rows[0], 39, 2025)
	if got.LeagueID != 39 || got.Season != 2025 {
		t.Fatalf("unexpected key: league=%d season=%d", got.LeagueID, got.Season)
	}
	if got.TeamID != 42 || got.Rank != 1 || got.Points != 10 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Played != 4 || got.Win != 3 || got.Draw != 1 || got.Lose != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.GoalsFor != 9 || got.GoalsAgainst != 2 {
		t.Fatalf("unexpected goals: %+v", got)
	}
}

func TestUnwrapStandingRowsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []map[string]any
	}{
		{"empty payload", nil},
		{"missing league", []map[string]any{{"foo": "bar"}}},
		{"missing standings", []map[string]any{{"league": map[string]any{"id": float64(39)}}}},
		{"empty groups", []map[string]any{{"league": map[string]any{"standings": []any{}}}}},
		{"group wrong type", []map[string]any{{"league": map[string]any{"standings": []any{"nope"}}}}},
		{"empty first group", []map[string]any{{"league": map[string]any{"standings": []any{[]any{}}}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := unwrapStandingRows(tc.payload); ok {
				t.Fatal("expected ok=false for malformed payload")
			}
		})
	}
}

func TestMapCompetitionItem(t *testing.T) {
	t.Parallel()

	got := mapCompetitionItem(competitionItem(39, "Premier League"), 2024)

	if got.LeagueID != 39 || got.Name != "Premier League" {
		t.Fatalf("unexpected competition: %+v", got)
	}
	if got.Season != 2025 {
		t.Fatalf("season from payload should win, got %d", got.Season)
	}
	if !got.IsCurrent {
		t.Fatal("synced competitions are always current")
	}
	if got.CountryCode == nil || *got.CountryCode != "GB" {
		t.Fatalf("unexpected country code: %v", got.CountryCode)
	}
	if got.SeasonStart == nil || got.SeasonStart.Format("2006-01-02") != "2025-08-09" {
		t.Fatalf("unexpected season start: %v", got.SeasonStart)
	}
}

func TestMapCompetitionItemPrefersCurrentSeason(t *testing.T) {
	t.Parallel()

	item := competitionItem(39, "Premier League")
	item["seasons"] = []any{
		map[string]any{"year": float64(2024), "start": "2024-08-10", "end": "2025-05-25", "current": false},
		map[string]any{"year": float64(2025), "start": "2025-08-09", "end": "2026-05-24", "current": true},
	}

	got := mapCompetitionItem(item, 2023)
	if got.Season != 2025 {
		t.Fatalf("expected the current season entry to win, got %d", got.Season)
	}
	if got.SeasonStart == nil || got.SeasonStart.Format("2006-01-02") != "2025-08-09" {
		t.Fatalf("unexpected season start: %v", got.SeasonStart)
	}
}

func TestMapCompetitionItemNoCurrentSeasonFallsBackToFirst(t *testing.T) {
	t.Parallel()

	item := competitionItem(48, "League Cup")
	item["seasons"] = []any{
		map[string]any{"year": float64(2024), "start": "2024-08-10", "end": "2025-05-25", "current": false},
		map[string]any{"year": float64(2025), "current": false},
	}

	got := mapCompetitionItem(item, 2023)
	if got.Season != 2024 {
		t.Fatalf("expected the first season entry, got %d", got.Season)
	}
}

func TestMapCompetitionItemMissingSeasons(t *testing.T) {
	t.Parallel()

	item := map[string]any{
		"league": map[string]any{"id": float64(2), "name": "Champions League", "type": "Cup"},
	}
	got := mapCompetitionItem(item, 2025)

	if got.Season != 2025 {
		t.Fatalf("expected fallback season, got %d", got.Season)
	}
	if got.SeasonStart != nil || got.SeasonEnd != nil {
		t.Fatal("expected nil season bounds")
	}
}
