package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northbank/supporters-api/internal/domain/competition"
	qb "github.com/northbank/supporters-api/internal/platform/querybuilder"
)

const competitionUpsertSuffix = `ON CONFLICT (league_id)
DO UPDATE SET
    name = EXCLUDED.name,
    type = EXCLUDED.type,
    logo = EXCLUDED.logo,
    country = EXCLUDED.country,
    country_code = EXCLUDED.country_code,
    country_flag = EXCLUDED.country_flag,
    season = EXCLUDED.season,
    season_start = EXCLUDED.season_start,
    season_end = EXCLUDED.season_end,
    is_current = EXCLUDED.is_current,
    updated_at = NOW()`

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) Upsert(ctx context.Context, item competition.Competition) error {
	query, args, err := qb.InsertModel("competitions", newCompetitionInsertModel(item), competitionUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert competition: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) DemoteSeason(ctx context.Context, season int) error {
	query, args, err := qb.Update("competitions").
		Set("is_current", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season", season),
			qb.Eq("is_current", true),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build demote competitions query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("demote competitions: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) List(ctx context.Context, onlyCurrent bool) ([]competition.Competition, error) {
	builder := qb.Select("*").From("competitions").OrderBy("name", "league_id")
	if onlyCurrent {
		builder = builder.Where(qb.Eq("is_current", true))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
