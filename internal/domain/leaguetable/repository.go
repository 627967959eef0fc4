package leaguetable

import "context"

// Repository persists standing rows keyed by (league, season, team).
type Repository interface {
	Upsert(ctx context.Context, row Row) error
	ListBySeason(ctx context.Context, leagueID int64, season int) ([]Row, error)
}
