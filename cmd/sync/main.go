package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/northbank/supporters-api/internal/app"
	"github.com/northbank/supporters-api/internal/config"
	"github.com/northbank/supporters-api/internal/observability"
	"github.com/northbank/supporters-api/internal/platform/logging"
	"github.com/northbank/supporters-api/internal/usecase"
)

// Runs a single sync pass and exits. Phase flags narrow the run; without
// any flag every phase executes.
func main() {
	competitionsOnly := flag.Bool("competitions-only", false, "sync only the competitions phase")
	fixturesOnly := flag.Bool("fixtures-only", false, "sync only the upcoming fixtures phase")
	resultsOnly := flag.Bool("results-only", false, "sync only the results phase")
	standingsOnly := flag.Bool("standings-only", false, "sync only the standings phase")
	detailsOnly := flag.Bool("details-only", false, "sync only the match detail backfill phase")
	seasonYear := flag.Int("season", 0, "season start year (0 means current season)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg.SyncEnabled = false

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	opts := usecase.SyncOptions{Season: *seasonYear}
	flags := []struct {
		set   bool
		phase usecase.SyncPhase
	}{
		{*competitionsOnly, usecase.PhaseCompetitions},
		{*fixturesOnly, usecase.PhaseFixtures},
		{*resultsOnly, usecase.PhaseResults},
		{*standingsOnly, usecase.PhaseStandings},
		{*detailsOnly, usecase.PhaseDetails},
	}
	for _, f := range flags {
		if f.set {
			opts.Phases = append(opts.Phases, f.phase)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := application.Sync.Run(ctx, opts)
	if err != nil {
		logger.Error("sync run failed", "error", err)
		_ = shutdownUptrace(context.Background())
		os.Exit(1)
	}

	logger.Info("sync run finished",
		"season", report.Season,
		"duration_ms", report.Duration.Milliseconds(),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	_ = shutdownUptrace(shutdownCtx)
}
