package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/northbank/supporters-api/internal/platform/logging"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	LogLevel       logging.Level

	CORSAllowedOrigins []string
	InternalSyncToken  string

	DBURL          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	FootballAPIKey        string
	FootballAPIHost       string
	FootballAPIBaseURL    string
	FootballTeamID        int64
	FootballLeagueID      int64
	FootballAPITimeout    time.Duration
	FootballAPIMaxRetries int

	SyncEnabled      bool
	SyncInterval     time.Duration
	DetailFetchDelay time.Duration
	DetailFetchLimit int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string

	ShutdownTimeout time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	dbMaxIdleConns, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, err
	}

	footballTeamID, err := getEnvAsInt64("FOOTBALL_TEAM_ID", 42)
	if err != nil {
		return Config{}, err
	}
	if footballTeamID <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_TEAM_ID must be > 0")
	}
	footballLeagueID, err := getEnvAsInt64("FOOTBALL_LEAGUE_ID", 39)
	if err != nil {
		return Config{}, err
	}
	if footballLeagueID <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_LEAGUE_ID must be > 0")
	}

	footballAPITimeout, err := time.ParseDuration(getEnv("FOOTBALL_API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_API_TIMEOUT: %w", err)
	}
	if footballAPITimeout <= 0 {
		return Config{}, fmt.Errorf("FOOTBALL_API_TIMEOUT must be > 0")
	}
	footballAPIMaxRetries, err := getEnvAsInt("FOOTBALL_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, err
	}
	if footballAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOOTBALL_API_MAX_RETRIES must be >= 0")
	}

	syncEnabled, err := strconv.ParseBool(getEnv("SYNC_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_ENABLED: %w", err)
	}
	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_INTERVAL: %w", err)
	}
	if syncInterval <= 0 {
		return Config{}, fmt.Errorf("SYNC_INTERVAL must be > 0")
	}

	detailFetchDelay, err := time.ParseDuration(getEnv("DETAIL_FETCH_DELAY", "250ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DETAIL_FETCH_DELAY: %w", err)
	}
	if detailFetchDelay < 0 {
		return Config{}, fmt.Errorf("DETAIL_FETCH_DELAY must be >= 0")
	}
	detailFetchLimit, err := getEnvAsInt("DETAIL_FETCH_LIMIT", 20)
	if err != nil {
		return Config{}, err
	}
	if detailFetchLimit <= 0 {
		return Config{}, fmt.Errorf("DETAIL_FETCH_LIMIT must be > 0")
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
	}
	if shutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "supporters-api"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalSyncToken:  strings.TrimSpace(getEnv("INTERNAL_SYNC_TOKEN", "")),

		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
		DBMaxOpenConns: dbMaxOpenConns,
		DBMaxIdleConns: dbMaxIdleConns,

		FootballAPIKey:        strings.TrimSpace(getEnv("FOOTBALL_API_KEY", "")),
		FootballAPIHost:       strings.TrimSpace(getEnv("FOOTBALL_API_HOST", "v3.football.api-sports.io")),
		FootballAPIBaseURL:    strings.TrimSpace(getEnv("FOOTBALL_API_BASE_URL", "https://v3.football.api-sports.io")),
		FootballTeamID:        footballTeamID,
		FootballLeagueID:      footballLeagueID,
		FootballAPITimeout:    footballAPITimeout,
		FootballAPIMaxRetries: footballAPIMaxRetries,

		SyncEnabled:      syncEnabled,
		SyncInterval:     syncInterval,
		DetailFetchDelay: detailFetchDelay,
		DetailFetchLimit: detailFetchLimit,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,

		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(v))
	switch env {
	case EnvDev, EnvStaging, EnvProd:
		return env, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q (want %s|%s|%s)", v, EnvDev, EnvStaging, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
