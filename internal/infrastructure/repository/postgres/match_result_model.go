package postgres

import (
	"time"

	"github.com/northbank/supporters-api/internal/domain/matchresult"
)

type matchResultTableModel struct {
	FixtureID      int64     `db:"fixture_id"`
	Date           time.Time `db:"date"`
	Timezone       string    `db:"timezone"`
	Venue          *string   `db:"venue"`
	Referee        *string   `db:"referee"`
	LeagueID       int64     `db:"league_id"`
	LeagueName     string    `db:"league_name"`
	Season         int       `db:"season"`
	Round          *string   `db:"round"`
	HomeTeamID     int64     `db:"home_team_id"`
	HomeTeam       string    `db:"home_team"`
	HomeLogo       string    `db:"home_logo"`
	AwayTeamID     int64     `db:"away_team_id"`
	AwayTeam       string    `db:"away_team"`
	AwayLogo       string    `db:"away_logo"`
	StatusLong     string    `db:"status_long"`
	StatusShort    string    `db:"status_short"`
	Elapsed        *int      `db:"elapsed"`
	HomeGoals      int       `db:"home_goals"`
	AwayGoals      int       `db:"away_goals"`
	HalftimeHome   *int      `db:"halftime_home"`
	HalftimeAway   *int      `db:"halftime_away"`
	FulltimeHome   *int      `db:"fulltime_home"`
	FulltimeAway   *int      `db:"fulltime_away"`
	ExtratimeHome  *int      `db:"extratime_home"`
	ExtratimeAway  *int      `db:"extratime_away"`
	PenaltyHome    *int      `db:"penalty_home"`
	PenaltyAway    *int      `db:"penalty_away"`
	Result         string    `db:"result"`
	DetailsFetched bool      `db:"details_fetched"`
	Events         []byte    `db:"events"`
	Lineups        []byte    `db:"lineups"`
	Statistics     []byte    `db:"statistics"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// matchResultInsertModel deliberately excludes the detail columns and
// the details_fetched flag: a re-sync must never clobber what the
// backfill job has already written.
type matchResultInsertModel struct {
	FixtureID     int64     `db:"fixture_id"`
	Date          time.Time `db:"date"`
	Timezone      string    `db:"timezone"`
	Venue         *string   `db:"venue"`
	Referee       *string   `db:"referee"`
	LeagueID      int64     `db:"league_id"`
	LeagueName    string    `db:"league_name"`
	Season        int       `db:"season"`
	Round         *string   `db:"round"`
	HomeTeamID    int64     `db:"home_team_id"`
	HomeTeam      string    `db:"home_team"`
	HomeLogo      string    `db:"home_logo"`
	AwayTeamID    int64     `db:"away_team_id"`
	AwayTeam      string    `db:"away_team"`
	AwayLogo      string    `db:"away_logo"`
	StatusLong    string    `db:"status_long"`
	StatusShort   string    `db:"status_short"`
	Elapsed       *int      `db:"elapsed"`
	HomeGoals     int       `db:"home_goals"`
	AwayGoals     int       `db:"away_goals"`
	HalftimeHome  *int      `db:"halftime_home"`
	HalftimeAway  *int      `db:"halftime_away"`
	FulltimeHome  *int      `db:"fulltime_home"`
	FulltimeAway  *int      `db:"fulltime_away"`
	ExtratimeHome *int      `db:"extratime_home"`
	ExtratimeAway *int      `db:"extratime_away"`
	PenaltyHome   *int      `db:"penalty_home"`
	PenaltyAway   *int      `db:"penalty_away"`
	Result        string    `db:"result"`
}

func newMatchResultInsertModel(item matchresult.MatchResult) matchResultInsertModel {
	return matchResultInsertModel{
		FixtureID:     item.FixtureID,
		Date:          item.Date,
		Timezone:      item.Timezone,
		Venue:         item.Venue,
		Referee:       item.Referee,
		LeagueID:      item.LeagueID,
		LeagueName:    item.LeagueName,
		Season:        item.Season,
		Round:         item.Round,
		HomeTeamID:    item.HomeTeamID,
		HomeTeam:      item.HomeTeam,
		HomeLogo:      item.HomeLogo,
		AwayTeamID:    item.AwayTeamID,
		AwayTeam:      item.AwayTeam,
		AwayLogo:      item.AwayLogo,
		StatusLong:    item.StatusLong,
		StatusShort:   item.StatusShort,
		Elapsed:       item.Elapsed,
		HomeGoals:     item.HomeGoals,
		AwayGoals:     item.AwayGoals,
		HalftimeHome:  item.HalftimeHome,
		HalftimeAway:  item.HalftimeAway,
		FulltimeHome:  item.FulltimeHome,
		FulltimeAway:  item.FulltimeAway,
		ExtratimeHome: item.ExtratimeHome,
		ExtratimeAway: item.ExtratimeAway,
		PenaltyHome:   item.PenaltyHome,
		PenaltyAway:   item.PenaltyAway,
		Result:        item.Result,
	}
}

func (m matchResultTableModel) toDomain() matchresult.MatchResult {
	return matchresult.MatchResult{
		FixtureID:      m.FixtureID,
		Date:           m.Date,
		Timezone:       m.Timezone,
		Venue:          m.Venue,
		Referee:        m.Referee,
		LeagueID:       m.LeagueID,
		LeagueName:     m.LeagueName,
		Season:         m.Season,
		Round:          m.Round,
		HomeTeamID:     m.HomeTeamID,
		HomeTeam:       m.HomeTeam,
		HomeLogo:       m.HomeLogo,
		AwayTeamID:     m.AwayTeamID,
		AwayTeam:       m.AwayTeam,
		AwayLogo:       m.AwayLogo,
		StatusLong:     m.StatusLong,
		StatusShort:    m.StatusShort,
		Elapsed:        m.Elapsed,
		HomeGoals:      m.HomeGoals,
		AwayGoals:      m.AwayGoals,
		HalftimeHome:   m.HalftimeHome,
		HalftimeAway:   m.HalftimeAway,
		FulltimeHome:   m.FulltimeHome,
		FulltimeAway:   m.FulltimeAway,
		ExtratimeHome:  m.ExtratimeHome,
		ExtratimeAway:  m.ExtratimeAway,
		PenaltyHome:    m.PenaltyHome,
		PenaltyAway:    m.PenaltyAway,
		Result:         m.Result,
		DetailsFetched: m.DetailsFetched,
		Events:         m.Events,
		Lineups:        m.Lineups,
		Statistics:     m.Statistics,
	}
}
