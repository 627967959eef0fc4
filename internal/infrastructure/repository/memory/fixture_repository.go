// Package memory provides in-memory repositories used by tests and by
// DB-less local boots. Semantics mirror the postgres implementations.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/northbank/supporters-api/internal/domain/fixture"
)

type FixtureRepository struct {
	mu   sync.RWMutex
	byID map[int64]fixture.Fixture
	now  func() time.Time
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{
		byID: make(map[int64]fixture.Fixture),
		now:  time.Now,
	}
}

func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.FixtureID] = item
	return nil
}

func (r *FixtureRepository) ListUpcoming(_ context.Context, teamID int64, limit int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	out := make([]fixture.Fixture, 0, len(r.byID))
	for _, item := range r.byID {
		if item.HomeTeamID != teamID && item.AwayTeamID != teamID {
			continue
		}
		if item.Date.Before(now) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len reports the number of stored fixtures.
func (r *FixtureRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Get returns a stored fixture by id.
func (r *FixtureRepository) Get(fixtureID int64) (fixture.Fixture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byID[fixtureID]
	return item, ok
}
