package fixture

import "time"

// Fixture represents one scheduled or in-progress match, keyed by the
// provider-assigned fixture id.
type Fixture struct {
	FixtureID   int64
	Date        time.Time
	Timezone    string
	Venue       *string
	Referee     *string
	LeagueID    int64
	LeagueName  string
	Season      int
	Round       *string
	HomeTeamID  int64
	HomeTeam    string
	HomeLogo    string
	AwayTeamID  int64
	AwayTeam    string
	AwayLogo    string
	StatusLong  string
	StatusShort string
	Elapsed     *int
}

// IsHome reports whether the tracked team plays this fixture at home.
func (f Fixture) IsHome(teamID int64) bool {
	return f.HomeTeamID == teamID
}

// Opponent returns the name and crest of the side facing the tracked team.
func (f Fixture) Opponent(teamID int64) (name, logo string) {
	if f.IsHome(teamID) {
		return f.AwayTeam, f.AwayLogo
	}
	return f.HomeTeam, f.HomeLogo
}
