package postgres

import (
	"time"

	"github.com/northbank/supporters-api/internal/domain/leaguetable"
)

type leagueTableRowModel struct {
	LeagueID         int64      `db:"league_id"`
	Season           int        `db:"season"`
	TeamID           int64      `db:"team_id"`
	TeamName         string     `db:"team_name"`
	TeamLogo         string     `db:"team_logo"`
	Rank             int        `db:"rank"`
	Points           int        `db:"points"`
	GoalsDiff        int        `db:"goals_diff"`
	GroupLabel       string     `db:"group_label"`
	Form             string     `db:"form"`
	Status           string     `db:"status"`
	Description      string     `db:"description"`
	Played           int        `db:"played"`
	Win              int        `db:"win"`
	Draw             int        `db:"draw"`
	Lose             int        `db:"lose"`
	GoalsFor         int        `db:"goals_for"`
	GoalsAgainst     int        `db:"goals_against"`
	HomePlayed       int        `db:"home_played"`
	HomeWin          int        `db:"home_win"`
	HomeDraw         int        `db:"home_draw"`
	HomeLose         int        `db:"home_lose"`
	HomeGoalsFor     int        `db:"home_goals_for"`
	HomeGoalsAgainst int        `db:"home_goals_against"`
	AwayPlayed       int        `db:"away_played"`
	AwayWin          int        `db:"away_win"`
	AwayDraw         int        `db:"away_draw"`
	AwayLose         int        `db:"away_lose"`
	AwayGoalsFor     int        `db:"away_goals_for"`
	AwayGoalsAgainst int        `db:"away_goals_against"`
	SourceUpdatedAt  *time.Time `db:"source_updated_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

type leagueTableInsertModel struct {
	LeagueID         int64      `db:"league_id"`
	Season           int        `db:"season"`
	TeamID           int64      `db:"team_id"`
	TeamName         string     `db:"team_name"`
	TeamLogo         string     `db:"team_logo"`
	Rank             int        `db:"rank"`
	Points           int        `db:"points"`
	GoalsDiff        int        `db:"goals_diff"`
	GroupLabel       string     `db:"group_label"`
	Form             string     `db:"form"`
	Status           string     `db:"status"`
	Description      string     `db:"description"`
	Played           int        `db:"played"`
	Win              int        `db:"win"`
	Draw             int        `db:"draw"`
	Lose             int        `db:"lose"`
	GoalsFor         int        `db:"goals_for"`
	GoalsAgainst     int        `db:"goals_against"`
	HomePlayed       int        `db:"home_played"`
	HomeWin          int        `db:"home_win"`
	HomeDraw         int        `db:"home_draw"`
	HomeLose         int        `db:"home_lose"`
	HomeGoalsFor     int        `db:"home_goals_for"`
	HomeGoalsAgainst int        `db:"home_goals_against"`
	AwayPlayed       int        `db:"away_played"`
	AwayWin          int        `db:"away_win"`
	AwayDraw         int        `db:"away_draw"`
	AwayLose         int        `db:"away_lose"`
	AwayGoalsFor     int        `db:"away_goals_for"`
	AwayGoalsAgainst int        `db:"away_goals_against"`
	SourceUpdatedAt  *time.Time `db:"source_updated_at"`
}

func newLeagueTableInsertModel(row leaguetable.Row) leagueTableInsertModel {
	return leagueTableInsertModel{
		LeagueID:         row.LeagueID,
		Season:           row.Season,
		TeamID:           row.TeamID,
		TeamName:         row.TeamName,
		TeamLogo:         row.TeamLogo,
		Rank:             row.Rank,
		Points:           row.Points,
		GoalsDiff:        row.GoalsDiff,
		GroupLabel:       row.GroupLabel,
		Form:             row.Form,
		Status:           row.Status,
		Description:      row.Description,
		Played:           row.Played,
		Win:              row.Win,
		Draw:             row.Draw,
		Lose:             row.Lose,
		GoalsFor:         row.GoalsFor,
		GoalsAgainst:     row.GoalsAgainst,
		HomePlayed:       row.HomePlayed,
		HomeWin:          row.HomeWin,
		HomeDraw:         row.HomeDraw,
		HomeLose:         row.HomeLose,
		HomeGoalsFor:     row.HomeGoalsFor,
		HomeGoalsAgainst: row.HomeGoalsAgainst,
		AwayPlayed:       row.AwayPlayed,
		AwayWin:          row.AwayWin,
		AwayDraw:         row.AwayDraw,
		AwayLose:         row.AwayLose,
		AwayGoalsFor:     row.AwayGoalsFor,
		AwayGoalsAgainst: row.AwayGoalsAgainst,
		SourceUpdatedAt:  row.SourceUpdatedAt,
	}
}

func (m leagueTableRowModel) toDomain() leaguetable.Row {
	return leaguetable.Row{
		LeagueID:         m.LeagueID,
		Season:           m.Season,
		TeamID:           m.TeamID,
		TeamName:         m.TeamName,
		TeamLogo:         m.TeamLogo,
		Rank:             m.Rank,
		Points:           m.Points,
		GoalsDiff:        m.GoalsDiff,
		GroupLabel:       m.GroupLabel,
		Form:             m.Form,
		Status:           m.Status,
		Description:      m.Description,
		Played:           m.Played,
		Win:              m.Win,
		Draw:             m.Draw,
		Lose:             m.Lose,
		GoalsFor:         m.GoalsFor,
		GoalsAgainst:     m.GoalsAgainst,
		HomePlayed:       m.HomePlayed,
		HomeWin:          m.HomeWin,
		HomeDraw:         m.HomeDraw,
		HomeLose:         m.HomeLose,
		HomeGoalsFor:     m.HomeGoalsFor,
		HomeGoalsAgainst: m.HomeGoalsAgainst,
		AwayPlayed:       m.AwayPlayed,
		AwayWin:          m.AwayWin,
		AwayDraw:         m.AwayDraw,
		AwayLose:         m.AwayLose,
		AwayGoalsFor:     m.AwayGoalsFor,
		AwayGoalsAgainst: m.AwayGoalsAgainst,
		SourceUpdatedAt:  m.SourceUpdatedAt,
	}
}
