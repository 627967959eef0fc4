package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northbank/supporters-api/internal/domain/leaguetable"
)

type tableKey struct {
	leagueID int64
	season   int
	teamID   int64
}

type LeagueTableRepository struct {
	mu    sync.RWMutex
	byKey map[tableKey]leaguetable.Row
}

func NewLeagueTableRepository() *LeagueTableRepository {
	return &LeagueTableRepository{byKey: make(map[tableKey]leaguetable.Row)}
}

func (r *LeagueTableRepository) Upsert(_ context.Context, row leaguetable.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[tableKey{row.LeagueID, row.Season, row.TeamID}] = row
	return nil
}

func (r *LeagueTableRepository) ListBySeason(_ context.Context, leagueID int64, season int) ([]leaguetable.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaguetable.Row, 0, len(r.byKey))
	for key, row := range r.byKey {
		if key.leagueID != leagueID || key.season != season {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

// Len reports the number of stored rows.
func (r *LeagueTableRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
