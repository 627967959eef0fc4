package competition

import "time"

// Competition represents a league or cup the tracked team takes part in
// during a season, keyed by the provider league id.
type Competition struct {
	LeagueID    int64
	Name        string
	Type        string
	Logo        string
	Country     string
	CountryCode *string
	CountryFlag *string
	Season      int
	SeasonStart *time.Time
	SeasonEnd   *time.Time
	IsCurrent   bool
}
