package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/config"
	"github.com/worktrackhq/worktrack/internal/scheduler"
	"github.com/worktrackhq/worktrack/internal/services"
	"github.com/worktrackhq/worktrack/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	db, err := store.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	documents, err := store.NewGormStore(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare document store")
	}

	coordinator := services.NewCoordinator(documents, logger)
	if err := coordinator.SeedIfNeeded(); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed baseline dataset")
	}

	snap := coordinator.Snapshot()
	logger.Info().
		Int("users", len(snap.Users)).
		Int("projects", len(snap.Projects)).
		Int("tasks", len(snap.Tasks)).
		Msg("worktrack core ready")

	var sched *scheduler.Scheduler
	if cfg.DeadlineCron != "" {
		sched, err = scheduler.New(coordinator, cfg.DeadlineCron, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("spec", cfg.DeadlineCron).Msg("invalid DEADLINE_CRON")
		}
		sched.Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if sched != nil {
		sched.Stop()
	}
	logger.Info().Msg("worktrack core shutting down")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.AppEnv == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
