package postgres

import (
	"time"

	"github.com/northbank/supporters-api/internal/domain/competition"
)

type competitionTableModel struct {
	LeagueID    int64      `db:"league_id"`
	Name        string     `db:"name"`
	Type        string     `db:"type"`
	Logo        string     `db:"logo"`
	Country     string     `db:"country"`
	CountryCode *string    `db:"country_code"`
	CountryFlag *string    `db:"country_flag"`
	Season      int        `db:"season"`
	SeasonStart *time.Time `db:"season_start"`
	SeasonEnd   *time.Time `db:"season_end"`
	IsCurrent   bool       `db:"is_current"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type competitionInsertModel struct {
	LeagueID    int64      `db:"league_id"`
	Name        string     `db:"name"`
	Type        string     `db:"type"`
	Logo        string     `db:"logo"`
	Country     string     `db:"country"`
	CountryCode *string    `db:"country_code"`
	CountryFlag *string    `db:"country_flag"`
	Season      int        `db:"season"`
	SeasonStart *time.Time `db:"season_start"`
	SeasonEnd   *time.Time `db:"season_end"`
	IsCurrent   bool       `db:"is_current"`
}

func newCompetitionInsertModel(item competition.Competition) competitionInsertModel {
	return competitionInsertModel{
		LeagueID:    item.LeagueID,
		Name:        item.Name,
		Type:        item.Type,
		Logo:        item.Logo,
		Country:     item.Country,
		CountryCode: item.CountryCode,
		CountryFlag: item.CountryFlag,
		Season:      item.Season,
		SeasonStart: item.SeasonStart,
		SeasonEnd:   item.SeasonEnd,
		IsCurrent:   item.IsCurrent,
	}
}

func (m competitionTableModel) toDomain() competition.Competition {
	return competition.Competition{
		LeagueID:    m.LeagueID,
		Name:        m.Name,
		Type:        m.Type,
		Logo:        m.Logo,
		Country:     m.Country,
		CountryCode: m.CountryCode,
		CountryFlag: m.CountryFlag,
		Season:      m.Season,
		SeasonStart: m.SeasonStart,
		SeasonEnd:   m.SeasonEnd,
		IsCurrent:   m.IsCurrent,
	}
}
