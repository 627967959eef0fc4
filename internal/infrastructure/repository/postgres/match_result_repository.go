package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/northbank/supporters-api/internal/domain/matchresult"
	qb "github.com/northbank/supporters-api/internal/platform/querybuilder"
)

const matchResultUpsertSuffix = `ON CONFLICT (fixture_id)
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
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    halftime_home = EXCLUDED.halftime_home,
    halftime_away = EXCLUDED.halftime_away,
    fulltime_home = EXCLUDED.fulltime_home,
    fulltime_away = EXCLUDED.fulltime_away,
    extratime_home = EXCLUDED.extratime_home,
    extratime_away = EXCLUDED.extratime_away,
    penalty_home = EXCLUDED.penalty_home,
    penalty_away = EXCLUDED.penalty_away,
    result = EXCLUDED.result,
    updated_at = NOW()`

type MatchResultRepository struct {
	db *sqlx.DB
}

func NewMatchResultRepository(db *sqlx.DB) *MatchResultRepository {
	return &MatchResultRepository{db: db}
}

func (r *MatchResultRepository) Upsert(ctx context.Context, item matchresult.MatchResult) error {
	query, args, err := qb.InsertModel("match_results", newMatchResultInsertModel(item), matchResultUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert match result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match result: %w", err)
	}
	return nil
}

func (r *MatchResultRepository) ListBySeason(ctx context.Context, teamID int64, season int) ([]matchresult.MatchResult, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(
			qb.Eq("season", season),
			qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID),
		).
		OrderBy("date DESC", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}

	out := make([]matchresult.MatchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchResultRepository) ListPendingDetails(ctx context.Context, teamID int64, limit int) ([]matchresult.MatchResult, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(
			qb.Eq("details_fetched", false),
			qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID),
		).
		OrderBy("date DESC", "fixture_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending details query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending details: %w", err)
	}

	out := make([]matchresult.MatchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchResultRepository) SaveDetails(ctx context.Context, fixtureID int64, details matchresult.Details) error {
	query, args, err := qb.Update("match_results").
		Set("events", details.Events).
		Set("lineups", details.Lineups).
		Set("statistics", details.Statistics).
		Set("details_fetched", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save details query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save match details: %w", err)
	}
	return nil
}
