package competition

import "context"

// Repository persists competitions keyed by league id.
//
// DemoteSeason flips is_current off for every stored row of a season;
// sync calls it before re-upserting the competitions that still exist
// upstream, so stale rows become non-current instead of being deleted.
type Repository interface {
	Upsert(ctx context.Context, item Competition) error
	DemoteSeason(ctx context.Context, season int) error
	List(ctx context.Context, onlyCurrent bool) ([]Competition, error)
}
