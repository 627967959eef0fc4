package postgres

import (
	"time"

	"github.com/northbank/supporters-api/internal/domain/fixture"
)

type fixtureTableModel struct {
	FixtureID   int64     `db:"fixture_id"`
	Date        time.Time `db:"date"`
	Timezone    string    `db:"timezone"`
	Venue       *string   `db:"venue"`
	Referee     *string   `db:"referee"`
	LeagueID    int64     `db:"league_id"`
	LeagueName  string    `db:"league_name"`
	Season      int       `db:"season"`
	Round       *string   `db:"round"`
	HomeTeamID  int64     `db:"home_team_id"`
	HomeTeam    string    `db:"home_team"`
	HomeLogo    string    `db:"home_logo"`
	AwayTeamID  int64     `db:"away_team_id"`
	AwayTeam    string    `db:"away_team"`
	AwayLogo    string    `db:"away_logo"`
	StatusLong  string    `db:"status_long"`
	StatusShort string    `db:"status_short"`
	Elapsed     *int      `db:"elapsed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// fixtureInsertModel leaves the bookkeeping columns to the database.
type fixtureInsertModel struct {
	FixtureID   int64     `db:"fixture_id"`
	Date        time.Time `db:"date"`
	Timezone    string    `db:"timezone"`
	Venue       *string   `db:"venue"`
	Referee     *string   `db:"referee"`
	LeagueID    int64     `db:"league_id"`
	LeagueName  string    `db:"league_name"`
	Season      int       `db:"season"`
	Round       *string   `db:"round"`
	HomeTeamID  int64     `db:"home_team_id"`
	HomeTeam    string    `db:"home_team"`
	HomeLogo    string    `db:"home_logo"`
	AwayTeamID  int64     `db:"away_team_id"`
	AwayTeam    string    `db:"away_team"`
	AwayLogo    string    `db:"away_logo"`
	StatusLong  string    `db:"status_long"`
	StatusShort string    `db:"status_short"`
	Elapsed     *int      `db:"elapsed"`
}

func newFixtureInsertModel(item fixture.Fixture) fixtureInsertModel {
	return fixtureInsertModel{
		FixtureID:   item.FixtureID,
		Date:        item.Date,
		Timezone:    item.Timezone,
		Venue:       item.Venue,
		Referee:     item.Referee,
		LeagueID:    item.LeagueID,
		LeagueName:  item.LeagueName,
		Season:      item.Season,
		Round:       item.Round,
		HomeTeamID:  item.HomeTeamID,
		HomeTeam:    item.HomeTeam,
		HomeLogo:    item.HomeLogo,
		AwayTeamID:  item.AwayTeamID,
		AwayTeam:    item.AwayTeam,
		AwayLogo:    item.AwayLogo,
		StatusLong:  item.StatusLong,
		StatusShort: item.StatusShort,
		Elapsed:     item.Elapsed,
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		FixtureID:   m.FixtureID,
		Date:        m.Date,
		Timezone:    m.Timezone,
		Venue:       m.Venue,
		Referee:     m.Referee,
		LeagueID:    m.LeagueID,
		LeagueName:  m.LeagueName,
		Season:      m.Season,
		Round:       m.Round,
		HomeTeamID:  m.HomeTeamID,
		HomeTeam:    m.HomeTeam,
		HomeLogo:    m.HomeLogo,
		AwayTeamID:  m.AwayTeamID,
		AwayTeam:    m.AwayTeam,
		AwayLogo:    m.AwayLogo,
		StatusLong:  m.StatusLong,
		StatusShort: m.StatusShort,
		Elapsed:     m.Elapsed,
	}
}
