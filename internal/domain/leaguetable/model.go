package leaguetable

import (
	"math"
	"time"
)

// Row represents one team's standing within one league and season. Rows
// are replaced wholesale on re-sync; the composite key is
// (league, season, team).
type Row struct {
	LeagueID         int64
	Season           int
	TeamID           int64
	TeamName         string
	TeamLogo         string
	Rank             int
	Points           int
	GoalsDiff        int
	GroupLabel       string
	Form             string
	Status           string
	Description      string
	Played           int
	Win              int
	Draw             int
	Lose             int
	GoalsFor         int
	GoalsAgainst     int
	HomePlayed       int
	HomeWin          int
	HomeDraw         int
	HomeLose         int
	HomeGoalsFor     int
	HomeGoalsAgainst int
	AwayPlayed       int
	AwayWin          int
	AwayDraw         int
	AwayLose         int
	AwayGoalsFor     int
	AwayGoalsAgainst int
	SourceUpdatedAt  *time.Time
}

// WinPercentage returns wins over games played as a percentage rounded to
// one decimal place. Zero games played yields zero.
func (r Row) WinPercentage() float64 {
	if r.Played == 0 {
		return 0
	}
	return math.Round(float64(r.Win)/float64(r.Played)*1000) / 10
}

// PointsPerGame returns points over games played rounded to two decimal
// places. Zero games played yields zero.
func (r Row) PointsPerGame() float64 {
	if r.Played == 0 {
		return 0
	}
	return math.Round(float64(r.Points)/float64(r.Played)*100) / 100
}
