package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northbank/supporters-api/internal/domain/fixture"
	qb "github.com/northbank/supporters-api/internal/platform/querybuilder"
)

const fixtureUpsertSuffix = `ON CONFLICT (fixture_id)
DO UPDATE SET
    date = EXCLUDED.date,
    timezone = EXCLUDED.timezone,
    venue = EXCLUDED.venue,
    referee = EXCLUDED.referee,
    league_id = EXCLUDED.league_id,
    league_name = EXCLUDED.league_name,
    season = EXCLUDED.season,
    round = EXCLUDED.round,
    home_team_id = EXCLUDED.home_team_id,
    home_team = EXCLUDED.home_team,
    home_logo = EXCLUDED.home_logo,
    away_team_id = EXCLUDED.away_team_id,
    away_team = EXCLUDED.away_team,
    away_logo = EXCLUDED.away_logo,
    status_long = EXCLUDED.status_long,
    status_short = EXCLUDED.status_short,
    elapsed = EXCLUDED.elapsed,
    updated_at = NOW()`

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	query, args, err := qb.InsertModel("fixtures", newFixtureInsertModel(item), fixtureUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) ListUpcoming(ctx context.Context, teamID int64, limit int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID),
			qb.Expr("date >= NOW()"),
		).
		OrderBy("date", "fixture_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list upcoming fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list upcoming fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
