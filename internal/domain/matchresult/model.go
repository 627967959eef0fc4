package matchresult

import (
	"fmt"
	"time"
)

// Outcomes from the tracked team's perspective.
const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// Venue types from the tracked team's perspective.
const (
	VenueHome = "H"
	VenueAway = "A"
)

// MatchResult represents a completed match, keyed by the provider-assigned
// fixture id. Detail blobs stay nil until the backfill job fetches them.
type MatchResult struct {
	FixtureID      int64
	Date           time.Time
	Timezone       string
	Venue          *string
	Referee        *string
	LeagueID       int64
	LeagueName     string
	Season         int
	Round          *string
	HomeTeamID     int64
	HomeTeam       string
	HomeLogo       string
	AwayTeamID     int64
	AwayTeam       string
	AwayLogo       string
	StatusLong     string
	StatusShort    string
	Elapsed        *int
	HomeGoals      int
	AwayGoals      int
	HalftimeHome   *int
	HalftimeAway   *int
	FulltimeHome   *int
	FulltimeAway   *int
	ExtratimeHome  *int
	ExtratimeAway  *int
	PenaltyHome    *int
	PenaltyAway    *int
	Result         string
	DetailsFetched bool
	Events         []byte
	Lineups        []byte
	Statistics     []byte
}

// Details holds the three fixture sub-resources fetched by the backfill
// job. A nil field means the provider had nothing for that sub-resource.
type Details struct {
	Events     []byte
	Lineups    []byte
	Statistics []byte
}

// DeriveResult classifies a final score from the tracked team's
// perspective. It works on the goals as persisted, never on upstream
// result fields.
func DeriveResult(teamID, homeTeamID int64, homeGoals, awayGoals int) string {
	ours, theirs := homeGoals, awayGoals
	if homeTeamID != teamID {
		ours, theirs = awayGoals, homeGoals
	}
	switch {
	case ours > theirs:
		return ResultWin
	case ours < theirs:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// IsHome reports whether the tracked team played at home.
func (m MatchResult) IsHome(teamID int64) bool {
	return m.HomeTeamID == teamID
}

// VenueType returns "H" or "A" from the tracked team's perspective.
func (m MatchResult) VenueType(teamID int64) string {
	if m.IsHome(teamID) {
		return VenueHome
	}
	return VenueAway
}

// Opponent returns the name and crest of the side the tracked team faced.
func (m MatchResult) Opponent(teamID int64) (name, logo string) {
	if m.IsHome(teamID) {
		return m.AwayTeam, m.AwayLogo
	}
	return m.HomeTeam, m.HomeLogo
}

// OpponentGoals returns the goals scored against the tracked team.
func (m MatchResult) OpponentGoals(teamID int64) int {
	if m.IsHome(teamID) {
		return m.AwayGoals
	}
	return m.HomeGoals
}

// Score formats the final score as "home - away".
func (m MatchResult) Score() string {
	return fmt.Sprintf("%d - %d", m.HomeGoals, m.AwayGoals)
}
