// Package apifootball wraps outbound calls to the API-Football data
// provider. Every operation returns the already-unwrapped `response`
// payload; provider-level errors and transport failures surface as
// plain errors, a missing credential surfaces as an empty payload.
package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/northbank/supporters-api/internal/domain/season"
	"github.com/northbank/supporters-api/internal/platform/logging"
	"github.com/northbank/supporters-api/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	defaultHost    = "v3.football.api-sports.io"

	// DefaultTeamID is the tracked team (Arsenal) in the provider's id space.
	DefaultTeamID = 42
	// DefaultLeagueID is the primary league (Premier League).
	DefaultLeagueID = 39

	// FinishedStatuses is the provider status filter selecting completed
	// matches: full time, after extra time, after penalties.
	FinishedStatuses = "FT-AET-PEN"
)

var (
	errProviderTransient   = crerr.New("football api transient failure")
	ErrProviderUnavailable = crerr.New("football data provider is temporarily unavailable")
)

// Item is one element of the provider's `response` array. Reconcilers
// convert items to typed structs immediately; nothing downstream of them
// touches the raw tree.
type Item = map[string]any

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Host           string
	APIKey         string
	TeamID         int64
	LeagueID       int64
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	host           string
	apiKey         string
	teamID         int64
	leagueID       int64
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}
	teamID := cfg.TeamID
	if teamID <= 0 {
		teamID = DefaultTeamID
	}
	leagueID := cfg.LeagueID
	if leagueID <= 0 {
		leagueID = DefaultLeagueID
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		host:           host,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		teamID:         teamID,
		leagueID:       leagueID,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		now:            now,
	}
}

// TeamID returns the tracked team's provider id.
func (c *Client) TeamID() int64 { return c.teamID }

// LeagueID returns the primary league's provider id.
func (c *Client) LeagueID() int64 { return c.leagueID }

// CurrentSeason returns the season year for the client's clock.
func (c *Client) CurrentSeason() int { return season.Current(c.now()) }

// NextFixtures returns the tracked team's next n scheduled fixtures.
func (c *Client) NextFixtures(ctx context.Context, n int) ([]Item, error) {
	return c.fetch(ctx, "/fixtures", map[string]string{
		"team": strconv.FormatInt(c.teamID, 10),
		"next": strconv.Itoa(n),
	})
}

// FixturesBySeason returns the tracked team's fixtures for a season,
// optionally filtered by a provider status list such as FinishedStatuses.
func (c *Client) FixturesBySeason(ctx context.Context, seasonYear int, status string) ([]Item, error) {
	params := map[string]string{
		"team":   strconv.FormatInt(c.teamID, 10),
		"season": strconv.Itoa(seasonYear),
	}
	if strings.TrimSpace(status) != "" {
		params["status"] = status
	}
	return c.fetch(ctx, "/fixtures", params)
}

// FixtureByID returns a single fixture.
func (c *Client) FixtureByID(ctx context.Context, fixtureID int64) ([]Item, error) {
	return c.fetch(ctx, "/fixtures", map[string]string{
		"id": strconv.FormatInt(fixtureID, 10),
	})
}

// LiveFixtures returns every fixture currently in play, league-wide.
func (c *Client) LiveFixtures(ctx context.Context) ([]Item, error) {
	return c.fetch(ctx, "/fixtures", map[string]string{"live": "all"})
}

// FixtureEvents returns the event timeline for one fixture.
func (c *Client) FixtureEvents(ctx context.Context, fixtureID int64) ([]Item, error) {
	return c.fetch(ctx, "/fixtures/events", map[string]string{
		"fixture": strconv.FormatInt(fixtureID, 10),
	})
}

// FixtureLineups returns both teams' lineups for one fixture.
func (c *Client) FixtureLineups(ctx context.Context, fixtureID int64) ([]Item, error) {
	return c.fetch(ctx, "/fixtures/lineups", map[string]string{
		"fixture": strconv.FormatInt(fixtureID, 10),
	})
}

// FixtureStatistics returns both teams' match statistics for one fixture.
func (c *Client) FixtureStatistics(ctx context.Context, fixtureID int64) ([]Item, error) {
	return c.fetch(ctx, "/fixtures/statistics", map[string]string{
		"fixture": strconv.FormatInt(fixtureID, 10),
	})
}

// Standings returns the raw standings payload for a league and season.
// The provider nests the table as [0].league.standings[0]; unwrapping is
// the caller's concern because the nesting is part of reconciliation.
func (c *Client) Standings(ctx context.Context, leagueID int64, seasonYear int) ([]Item, error) {
	return c.fetch(ctx, "/standings", map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(seasonYear),
	})
}

// TeamCompetitions returns the leagues and cups the tracked team plays in
// during a season.
func (c *Client) TeamCompetitions(ctx context.Context, seasonYear int) ([]Item, error) {
	return c.fetch(ctx, "/leagues", map[string]string{
		"team":   strconv.FormatInt(c.teamID, 10),
		"season": strconv.Itoa(seasonYear),
	})
}

type responseEnvelope struct {
	Get      string  `json:"get"`
	Errors   any     `json:"errors"`
	Results  int     `json:"results"`
	Response *[]Item `json:"response"`
}

func (c *Client) fetch(ctx context.Context, path string, query map[string]string) ([]Item, error) {
	if c.apiKey == "" {
		c.logger.WarnContext(ctx, "football api key not configured, skipping request", "path", path)
		return nil, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football api circuit breaker rejected request", "state", c.breaker.State())
			return nil, ErrProviderUnavailable
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	encoded := values.Encode()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.WriteString(c.baseURL)
	buf.WriteString(path)
	if encoded != "" {
		buf.WriteString("?")
		buf.WriteString(encoded)
	}
	fullURL := buf.String()

	flightKey := path + "?" + encoded
	out, err, _ := c.flight.Do(flightKey, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errProviderTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope responseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	if hasProviderErrors(envelope.Errors) {
		c.logger.ErrorContext(ctx, "football api reported errors", "path", path, "errors", envelope.Errors)
		return nil, fmt.Errorf("provider errors on %s: %v", path, envelope.Errors)
	}
	if envelope.Response == nil {
		return nil, fmt.Errorf("provider payload on %s is missing the response field", path)
	}

	return *envelope.Response, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-rapidapi-host", c.host)
		req.Header.Set("x-rapidapi-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func hasProviderErrors(raw any) bool {
	switch typed := raw.(type) {
	case nil:
		return false
	case []any:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	case string:
		return strings.TrimSpace(typed) != ""
	default:
		return true
	}
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" || key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
