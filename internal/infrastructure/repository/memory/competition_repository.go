package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/northbank/supporters-api/internal/domain/competition"
)

type CompetitionRepository struct {
	mu         sync.RWMutex
	byLeagueID map[int64]competition.Competition
}

func NewCompetitionRepository() *CompetitionRepository {
	return &CompetitionRepository{byLeagueID: make(map[int64]competition.Competition)}
}

func (r *CompetitionRepository) Upsert(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byLeagueID[item.LeagueID] = item
	return nil
}

func (r *CompetitionRepository) DemoteSeason(_ context.Context, season int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.byLeagueID {
		if item.Season == season && item.IsCurrent {
			item.IsCurrent = false
			r.byLeagueID[id] = item
		}
	}
	return nil
}

func (r *CompetitionRepository) List(_ context.Context, onlyCurrent bool) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.byLeagueID))
	for _, item := range r.byLeagueID {
		if onlyCurrent && !item.IsCurrent {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].LeagueID < out[j].LeagueID
	})
	return out, nil
}

// Get returns a stored competition by league id.
func (r *CompetitionRepository) Get(leagueID int64) (competition.Competition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byLeagueID[leagueID]
	return item, ok
}
