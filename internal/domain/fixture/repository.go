package fixture

import "context"

// Repository persists fixtures keyed by fixture id.
type Repository interface {
	Upsert(ctx context.Context, item Fixture) error
	ListUpcoming(ctx context.Context, teamID int64, limit int) ([]Fixture, error)
}
