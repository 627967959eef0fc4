package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/northbank/supporters-api/external/apifootball"
	"github.com/northbank/supporters-api/internal/config"
	"github.com/northbank/supporters-api/internal/domain/competition"
	"github.com/northbank/supporters-api/internal/domain/fixture"
	"github.com/northbank/supporters-api/internal/domain/leaguetable"
	"github.com/northbank/supporters-api/internal/domain/matchresult"
	"github.com/northbank/supporters-api/internal/infrastructure/repository/memory"
	"github.com/northbank/supporters-api/internal/infrastructure/repository/postgres"
	"github.com/northbank/supporters-api/internal/interfaces/httpapi"
	"github.com/northbank/supporters-api/internal/platform/logging"
	"github.com/northbank/supporters-api/internal/platform/resilience"
	"github.com/northbank/supporters-api/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// Application holds the wired service graph: provider client, repositories,
// sync pipeline, periodic scheduler, and the HTTP server.
type Application struct {
	Config    config.Config
	Logger    *logging.Logger
	Server    *http.Server
	Sync      *usecase.SyncService
	Scheduler *usecase.SyncScheduler

	db *sqlx.DB
}

type repositories struct {
	fixtures     fixture.Repository
	results      matchresult.Repository
	tables       leaguetable.Repository
	competitions competition.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:        cfg.FootballAPIBaseURL,
		Host:           cfg.FootballAPIHost,
		APIKey:         cfg.FootballAPIKey,
		TeamID:         cfg.FootballTeamID,
		LeagueID:       cfg.FootballLeagueID,
		Timeout:        cfg.FootballAPITimeout,
		MaxRetries:     cfg.FootballAPIMaxRetries,
		Logger:         logger,
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	})

	backfill := usecase.NewDetailBackfillService(
		provider,
		repos.results,
		resilience.NewFixedDelayLimiter(cfg.DetailFetchDelay),
		logger,
		cfg.DetailFetchLimit,
	)
	syncService := usecase.NewSyncService(
		provider,
		repos.fixtures,
		repos.results,
		repos.tables,
		repos.competitions,
		backfill,
		logger,
	)
	queryService := usecase.NewFootballQueryService(
		provider,
		repos.fixtures,
		repos.results,
		repos.tables,
		repos.competitions,
	)

	handler := httpapi.NewHandler(queryService, syncService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalSyncToken)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var scheduler *usecase.SyncScheduler
	if cfg.SyncEnabled {
		scheduler = usecase.NewSyncScheduler(syncService, cfg.SyncInterval, logger)
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Server:    server,
		Sync:      syncService,
		Scheduler: scheduler,
		db:        db,
	}, nil
}

// Start runs the HTTP server and the periodic sync scheduler. It blocks
// until the context is cancelled or the server fails.
func (a *Application) Start(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops the scheduler, drains the HTTP server, and closes the
// database pool.
func (a *Application) Shutdown(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}

// buildRepositories opens postgres-backed storage when DB_URL is set and
// falls back to in-memory repositories otherwise, which keeps local
// development and tests free of external dependencies.
func buildRepositories(cfg config.Config, logger *logging.Logger) (*sqlx.DB, repositories, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL not set, using in-memory repositories")
		return nil, repositories{
			fixtures:     memory.NewFixtureRepository(),
			results:      memory.NewMatchResultRepository(),
			tables:       memory.NewLeagueTableRepository(),
			competitions: memory.NewCompetitionRepository(),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, repositories{}, fmt.Errorf("open database: %w", err)
	}

	return db, repositories{
		fixtures:     postgres.NewFixtureRepository(db),
		results:      postgres.NewMatchResultRepository(db),
		tables:       postgres.NewLeagueTableRepository(db),
		competitions: postgres.NewCompetitionRepository(db),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, true)

	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
