package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northbank/supporters-api/internal/domain/leaguetable"
	qb "github.com/northbank/supporters-api/internal/platform/querybuilder"
)

// Standing rows are last-write-wins per (league, season, team); every
// stat column is replaced wholesale.
const leagueTableUpsertSuffix = `ON CONFLICT (league_id, season, team_id)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    team_logo = EXCLUDED.team_logo,
    rank = EXCLUDED.rank,
    points = EXCLUDED.points,
    goals_diff = EXCLUDED.goals_diff,
    group_label = EXCLUDED.group_label,
    form = EXCLUDED.form,
    status = EXCLUDED.status,
    description = EXCLUDED.description,
    played = EXCLUDED.played,
    win = EXCLUDED.win,
    draw = EXCLUDED.draw,
    lose = EXCLUDED.lose,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    home_played = EXCLUDED.home_played,
    home_win = EXCLUDED.home_win,
    home_draw = EXCLUDED.home_draw,
    home_lose = EXCLUDED.home_lose,
    home_goals_for = EXCLUDED.home_goals_for,
    home_goals_against = EXCLUDED.home_goals_against,
    away_played = EXCLUDED.away_played,
    away_win = EXCLUDED.away_win,
    away_draw = EXCLUDED.away_draw,
    away_lose = EXCLUDED.away_lose,
    away_goals_for = EXCLUDED.away_goals_for,
    away_goals_against = EXCLUDED.away_goals_against,
    source_updated_at = EXCLUDED.source_updated_at,
    updated_at = NOW()`

type LeagueTableRepository struct {
	db *sqlx.DB
}

func NewLeagueTableRepository(db *sqlx.DB) *LeagueTableRepository {
	return &LeagueTableRepository{db: db}
}

func (r *LeagueTableRepository) Upsert(ctx context.Context, row leaguetable.Row) error {
	query, args, err := qb.InsertModel("league_tables", newLeagueTableInsertModel(row), leagueTableUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert league table row query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league table row: %w", err)
	}
	return nil
}

func (r *LeagueTableRepository) ListBySeason(ctx context.Context, leagueID int64, season int) ([]leaguetable.Row, error) {
	query, args, err := qb.Select("*").From("league_tables").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season", season),
		).
		OrderBy("rank", "points DESC", "goals_diff DESC", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league table query: %w", err)
	}

	var rows []leagueTableRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league table: %w", err)
	}

	out := make([]leaguetable.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
