package matchresult

import "context"

// Repository persists match results keyed by fixture id.
//
// Upsert never touches the detail columns or the details_fetched flag of
// an existing row; only SaveDetails does, and it never clears the flag.
type Repository interface {
	Upsert(ctx context.Context, item MatchResult) error
	ListBySeason(ctx context.Context, teamID int64, season int) ([]MatchResult, error)
	ListPendingDetails(ctx context.Context, teamID int64, limit int) ([]MatchResult, error)
	SaveDetails(ctx context.Context, fixtureID int64, details Details) error
}
