package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northbank/supporters-api/internal/domain/matchresult"
)

type MatchResultRepository struct {
	mu   sync.RWMutex
	byID map[int64]matchresult.MatchResult
}

func NewMatchResultRepository() *MatchResultRepository {
	return &MatchResultRepository{byID: make(map[int64]matchresult.MatchResult)}
}

// Upsert replaces the sync-owned fields but preserves detail blobs and
// the details_fetched flag of an existing row, matching the postgres
// upsert's column list.
func (r *MatchResultRepository) Upsert(_ context.Context, item matchresult.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[item.FixtureID]; ok {
		item.DetailsFetched = existing.DetailsFetched
		item.Events = existing.Events
		item.Lineups = existing.Lineups
		item.Statistics = existing.Statistics
	}
	r.byID[item.FixtureID] = item
	return nil
}

func (r *MatchResultRepository) ListBySeason(_ context.Context, teamID int64, season int) ([]matchresult.MatchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchresult.MatchResult, 0, len(r.byID))
	for _, item := range r.byID {
		if item.Season != season {
			continue
		}
		if item.HomeTeamID != teamID && item.AwayTeamID != teamID {
			continue
		}
		out = append(out, item)
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *MatchResultRepository) ListPendingDetails(_ context.Context, teamID int64, limit int) ([]matchresult.MatchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchresult.MatchResult, 0, len(r.byID))
	for _, item := range r.byID {
		if item.DetailsFetched {
			continue
		}
		if item.HomeTeamID != teamID && item.AwayTeamID != teamID {
			continue
		}
		out = append(out, item)
	}
	sortByDateDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchResultRepository) SaveDetails(_ context.Context, fixtureID int64, details matchresult.Details) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[fixtureID]
	if !ok {
		return nil
	}
	item.Events = details.Events
	item.Lineups = details.Lineups
	item.Statistics = details.Statistics
	item.DetailsFetched = true
	r.byID[fixtureID] = item
	return nil
}

// Len reports the number of stored results.
func (r *MatchResultRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Get returns a stored result by fixture id.
func (r *MatchResultRepository) Get(fixtureID int64) (matchresult.MatchResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[fixtureID]
	return item, ok
}

func sortByDateDesc(items []matchresult.MatchResult) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].FixtureID < items[j].FixtureID
	})
}
