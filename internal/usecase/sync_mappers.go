package usecase

import (
	"time"

	"github.com/northbank/supporters-api/internal/domain/competition"
	"github.com/northbank/supporters-api/internal/domain/fixture"
	"github.com/northbank/supporters-api/internal/domain/leaguetable"
	"github.com/northbank/supporters-api/internal/domain/matchresult"
)

// Field mapping is deterministic and total: every target attribute has
// exactly one source path and one default. Missing paths fall back to
// nil for optional strings, 0 for numeric ids and goals, "UTC" for the
// timezone and the resolver season for a missing season.

func mapFixtureItem(item map[string]any, fallbackSeason int) fixture.Fixture {
	fx := getMap(item, "fixture")
	league := getMap(item, "league")
	teams := getMap(item, "teams")
	home := getMap(teams, "home")
	away := getMap(teams, "away")
	status := getMap(fx, "status")
	venue := getMap(fx, "venue")

	seasonYear := getInt(league, "season")
	if seasonYear == 0 {
		seasonYear = fallbackSeason
	}

	var date time.Time
	if parsed := getTime(fx, "date"); parsed != nil {
		date = *parsed
	}

	return fixture.Fixture{
		FixtureID:   getInt64(fx, "id"),
		Date:        date,
		Timezone:    firstNonEmpty(getString(fx, "timezone"), "UTC"),
		Venue:       getStringPtr(venue, "name"),
		Referee:     getStringPtr(fx, "referee"),
		LeagueID:    getInt64(league, "id"),
		LeagueName:  getString(league, "name"),
		Season:      seasonYear,
		Round:       getStringPtr(league, "round"),
		HomeTeamID:  getInt64(home, "id"),
		HomeTeam:    getString(home, "name"),
		HomeLogo:    getString(home, "logo"),
		AwayTeamID:  getInt64(away, "id"),
		AwayTeam:    getString(away, "name"),
		AwayLogo:    getString(away, "logo"),
		StatusLong:  getString(status, "long"),
		StatusShort: getString(status, "short"),
		Elapsed:     getIntPtr(status, "elapsed"),
	}
}

// mapMatchResultItem extracts goals with their defaults first and derives
// the W/D/L outcome from those same defaulted values, so the persisted
// result always matches the persisted score.
func mapMatchResultItem(item map[string]any, teamID int64, fallbackSeason int) matchresult.MatchResult {
	base := mapFixtureItem(item, fallbackSeason)

	goals := getMap(item, "goals")
	homeGoals := getInt(goals, "home")
	awayGoals := getInt(goals, "away")

	score := getMap(item, "score")
	halftime := getMap(score, "halftime")
	fulltime := getMap(score, "fulltime")
	extratime := getMap(score, "extratime")
	penalty := getMap(score, "penalty")

	return matchresult.MatchResult{
		FixtureID:     base.FixtureID,
		Date:          base.Date,
		Timezone:      base.Timezone,
		Venue:         base.Venue,
		Referee:       base.Referee,
		LeagueID:      base.LeagueID,
		LeagueName:    base.LeagueName,
		Season:        base.Season,
		Round:         base.Round,
		HomeTeamID:    base.HomeTeamID,
		HomeTeam:      base.HomeTeam,
		HomeLogo:      base.HomeLogo,
		AwayTeamID:    base.AwayTeamID,
		AwayTeam:      base.AwayTeam,
		AwayLogo:      base.AwayLogo,
		StatusLong:    base.StatusLong,
		StatusShort:   base.StatusShort,
		Elapsed:       base.Elapsed,
		HomeGoals:     homeGoals,
		AwayGoals:     awayGoals,
		HalftimeHome:  getIntPtr(halftime, "home"),
		HalftimeAway:  getIntPtr(halftime, "away"),
		FulltimeHome:  getIntPtr(fulltime, "home"),
		FulltimeAway:  getIntPtr(fulltime, "away"),
		ExtratimeHome: getIntPtr(extratime, "home"),
		ExtratimeAway: getIntPtr(extratime, "away"),
		PenaltyHome:   getIntPtr(penalty, "home"),
		PenaltyAway:   getIntPtr(penalty, "away"),
		Result:        matchresult.DeriveResult(teamID, base.HomeTeamID, homeGoals, awayGoals),
	}
}

func mapStandingRow(row map[string]any, leagueID int64, seasonYear int) leaguetable.Row {
	team := getMap(row, "team")
	all := getMap(row, "all")
	allGoals := getMap(all, "goals")
	home := getMap(row, "home")
	homeGoals := getMap(home, "goals")
	away := getMap(row, "away")
	awayGoals := getMap(away, "goals")

	return leaguetable.Row{
		LeagueID:         leagueID,
		Season:           seasonYear,
		TeamID:           getInt64(team, "id"),
		TeamName:         getString(team, "name"),
		TeamLogo:         getString(team, "logo"),
		Rank:             getInt(row, "rank"),
		Points:           getInt(row, "points"),
		GoalsDiff:        getInt(row, "goalsDiff"),
		GroupLabel:       getString(row, "group"),
		Form:             getString(row, "form"),
		Status:           getString(row, "status"),
		Description:      getString(row, "description"),
		Played:           getInt(all, "played"),
		Win:              getInt(all, "win"),
		Draw:             getInt(all, "draw"),
		Lose:             getInt(all, "lose"),
		GoalsFor:         getInt(allGoals, "for"),
		GoalsAgainst:     getInt(allGoals, "against"),
		HomePlayed:       getInt(home, "played"),
		HomeWin:          getInt(home, "win"),
		HomeDraw:         getInt(home, "draw"),
		HomeLose:         getInt(home, "lose"),
		HomeGoalsFor:     getInt(homeGoals, "for"),
		HomeGoalsAgainst: getInt(homeGoals, "against"),
		AwayPlayed:       getInt(away, "played"),
		AwayWin:          getInt(away, "win"),
		AwayDraw:         getInt(away, "draw"),
		AwayLose:         getInt(away, "lose"),
		AwayGoalsFor:     getInt(awayGoals, "for"),
		AwayGoalsAgainst: getInt(awayGoals, "against"),
		SourceUpdatedAt:  getTime(row, "update"),
	}
}

// unwrapStandingRows digs through the provider's standings nesting:
// [ { league: { standings: [ [ teamRow, ... ], ... ] } } ]. Only the
// first group is consumed. Every level is checked so a malformed payload
// yields ok=false instead of a panic.
func unwrapStandingRows(payload []map[string]any) ([]map[string]any, bool) {
	if len(payload) == 0 {
		return nil, false
	}
	league := getMap(payload[0], "league")
	if league == nil {
		return nil, false
	}
	groups := getSlice(league, "standings")
	if len(groups) == 0 {
		return nil, false
	}
	firstGroup, ok := groups[0].([]any)
	if !ok || len(firstGroup) == 0 {
		return nil, false
	}

	rows := make([]map[string]any, 0, len(firstGroup))
	for _, raw := range firstGroup {
		if row, ok := raw.(map[string]any); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, false
	}
	return rows, true
}

func mapCompetitionItem(item map[string]any, fallbackSeason int) competition.Competition {
	league := getMap(item, "league")
	country := getMap(item, "country")

	seasonEntry := currentSeasonEntry(getSlice(item, "seasons"))
	seasonYear := getInt(seasonEntry, "year")
	if seasonYear == 0 {
		seasonYear = fallbackSeason
	}

	return competition.Competition{
		LeagueID:    getInt64(league, "id"),
		Name:        getString(league, "name"),
		Type:        getString(league, "type"),
		Logo:        getString(league, "logo"),
		Country:     getString(country, "name"),
		CountryCode: getStringPtr(country, "code"),
		CountryFlag: getStringPtr(country, "flag"),
		Season:      seasonYear,
		SeasonStart: getTime(seasonEntry, "start"),
		SeasonEnd:   getTime(seasonEntry, "end"),
		IsCurrent:   true,
	}
}

// currentSeasonEntry prefers the season marked current; a season-filtered
// query normally returns one entry, but the provider may include more.
func currentSeasonEntry(seasons []any) map[string]any {
	var first map[string]any
	for _, raw := range seasons {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if first == nil {
			first = entry
		}
		if getBool(entry, "current") {
			return entry
		}
	}
	return first
}
