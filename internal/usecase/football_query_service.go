package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/northbank/supporters-api/internal/domain/competition"
	"github.com/northbank/supporters-api/internal/domain/fixture"
	"github.com/northbank/supporters-api/internal/domain/leaguetable"
	"github.com/northbank/supporters-api/internal/domain/matchresult"
	"github.com/northbank/supporters-api/internal/domain/season"
	"github.com/northbank/supporters-api/internal/platform/cache"
)

// liveFixtureCacheTTL bounds how stale the live endpoint may get while
// shielding the provider's request quota from request bursts.
const liveFixtureCacheTTL = 15 * time.Second

// UpcomingFixtureView is a stored fixture shaped from the tracked team's
// perspective.
type UpcomingFixtureView struct {
	FixtureID    int64     `json:"fixture_id"`
	Date         time.Time `json:"date"`
	LeagueName   string    `json:"league_name"`
	Round        *string   `json:"round,omitempty"`
	Opponent     string    `json:"opponent"`
	OpponentLogo string    `json:"opponent_logo"`
	IsHome       bool      `json:"is_home"`
	Venue        *string   `json:"venue,omitempty"`
	Status       string    `json:"status"`
}

// MatchResultView is a stored result shaped from the tracked team's
// perspective.
type MatchResultView struct {
	FixtureID      int64     `json:"fixture_id"`
	Date           time.Time `json:"date"`
	Season         int       `json:"season"`
	LeagueName     string    `json:"league_name"`
	Opponent       string    `json:"opponent"`
	OpponentLogo   string    `json:"opponent_logo"`
	VenueType      string    `json:"venue_type"`
	Score          string    `json:"score"`
	Result         string    `json:"result"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	DetailsFetched bool      `json:"details_fetched"`
}

// StandingView is one league table row with its read-time derived rates.
type StandingView struct {
	Rank          int     `json:"rank"`
	TeamID        int64   `json:"team_id"`
	TeamName      string  `json:"team_name"`
	TeamLogo      string  `json:"team_logo"`
	Played        int     `json:"played"`
	Win           int     `json:"win"`
	Draw          int     `json:"draw"`
	Lose          int     `json:"lose"`
	GoalsFor      int     `json:"goals_for"`
	GoalsAgainst  int     `json:"goals_against"`
	GoalsDiff     int     `json:"goals_diff"`
	Points        int     `json:"points"`
	Form          string  `json:"form"`
	WinPercentage float64 `json:"win_percentage"`
	PointsPerGame float64 `json:"points_per_game"`
}

// CompetitionView is one competition row for the read API.
type CompetitionView struct {
	LeagueID  int64  `json:"league_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Logo      string `json:"logo"`
	Country   string `json:"country"`
	Season    int    `json:"season"`
	IsCurrent bool   `json:"is_current"`
}

// FootballQueryService serves the read endpoints from the persisted
// stores; only LiveFixtures goes to the provider directly.
type FootballQueryService struct {
	provider     FootballDataProvider
	fixtures     fixture.Repository
	results      matchresult.Repository
	tables       leaguetable.Repository
	competitions competition.Repository
	liveCache    *cache.Store
	now          func() time.Time
}

func NewFootballQueryService(
	provider FootballDataProvider,
	fixtures fixture.Repository,
	results matchresult.Repository,
	tables leaguetable.Repository,
	competitions competition.Repository,
) *FootballQueryService {
	return &FootballQueryService{
		provider:     provider,
		fixtures:     fixtures,
		results:      results,
		tables:       tables,
		competitions: competitions,
		liveCache:    cache.NewStore(liveFixtureCacheTTL),
		now:          time.Now,
	}
}

func (s *FootballQueryService) UpcomingFixtures(ctx context.Context, limit int) ([]UpcomingFixtureView, error) {
	ctx, span := startUsecaseSpan(ctx, "FootballQueryService.UpcomingFixtures")
	defer span.End()

	if limit <= 0 {
		limit = defaultUpcomingFixtureCount
	}
	teamID := s.provider.TeamID()
	items, err := s.fixtures.ListUpcoming(ctx, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming fixtures: %w", err)
	}

	out := make([]UpcomingFixtureView, 0, len(items))
	for _, item := range items {
		opponent, logo := item.Opponent(teamID)
		out = append(out, UpcomingFixtureView{
			FixtureID:    item.FixtureID,
			Date:         item.Date,
			LeagueName:   item.LeagueName,
			Round:        item.Round,
			Opponent:     opponent,
			OpponentLogo: logo,
			IsHome:       item.IsHome(teamID),
			Venue:        item.Venue,
			Status:       item.StatusShort,
		})
	}
	return out, nil
}

func (s *FootballQueryService) Results(ctx context.Context, seasonYear int) ([]MatchResultView, error) {
	ctx, span := startUsecaseSpan(ctx, "FootballQueryService.Results")
	defer span.End()

	if seasonYear <= 0 {
		seasonYear = season.Current(s.now())
	}
	teamID := s.provider.TeamID()
	items, err := s.results.ListBySeason(ctx, teamID, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]MatchResultView, 0, len(items))
	for _, item := range items {
		opponent, logo := item.Opponent(teamID)
		goalsFor := item.HomeGoals
		if !item.IsHome(teamID) {
			goalsFor = item.AwayGoals
		}
		out = append(out, MatchResultView{
			FixtureID:      item.FixtureID,
			Date:           item.Date,
			Season:         item.Season,
			LeagueName:     item.LeagueName,
			Opponent:       opponent,
			OpponentLogo:   logo,
			VenueType:      item.VenueType(teamID),
			Score:          item.Score(),
			Result:         item.Result,
			GoalsFor:       goalsFor,
			GoalsAgainst:   item.OpponentGoals(teamID),
			DetailsFetched: item.DetailsFetched,
		})
	}
	return out, nil
}

func (s *FootballQueryService) Standings(ctx context.Context, seasonYear int) ([]StandingView, error) {
	ctx, span := startUsecaseSpan(ctx, "FootballQueryService.Standings")
	defer span.End()

	if seasonYear <= 0 {
		seasonYear = season.Current(s.now())
	}
	rows, err := s.tables.ListBySeason(ctx, s.provider.LeagueID(), seasonYear)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]StandingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, StandingView{
			Rank:          row.Rank,
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			TeamLogo:      row.TeamLogo,
			Played:        row.Played,
			Win:           row.Win,
			Draw:          row.Draw,
			Lose:          row.Lose,
			GoalsFor:      row.GoalsFor,
			GoalsAgainst:  row.GoalsAgainst,
			GoalsDiff:     row.GoalsDiff,
			Points:        row.Points,
			Form:          row.Form,
			WinPercentage: row.WinPercentage(),
			PointsPerGame: row.PointsPerGame(),
		})
	}
	return out, nil
}

func (s *FootballQueryService) Competitions(ctx context.Context, onlyCurrent bool) ([]CompetitionView, error) {
	ctx, span := startUsecaseSpan(ctx, "FootballQueryService.Competitions")
	defer span.End()

	items, err := s.competitions.List(ctx, onlyCurrent)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]CompetitionView, 0, len(items))
	for _, item := range items {
		out = append(out, CompetitionView{
			LeagueID:  item.LeagueID,
			Name:      item.Name,
			Type:      item.Type,
			Logo:      item.Logo,
			Country:   item.Country,
			Season:    item.Season,
			IsCurrent: item.IsCurrent,
		})
	}
	return out, nil
}

// LiveFixtures proxies the provider's league-wide live query. Nothing is
// persisted; a short TTL cache absorbs bursts of identical requests.
func (s *FootballQueryService) LiveFixtures(ctx context.Context) ([]map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "FootballQueryService.LiveFixtures")
	defer span.End()

	value, err := s.liveCache.GetOrLoad(ctx, "live-fixtures", func(ctx context.Context) (any, error) {
		return s.provider.LiveFixtures(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch live fixtures: %w", err)
	}
	payload, ok := value.([]map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected live fixtures payload type %T", value)
	}
	return payload, nil
}
