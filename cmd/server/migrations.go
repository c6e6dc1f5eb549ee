package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/arunika-app/arunika-api/internal/config"
)

const defaultMigrationsDir = "migrations"

// slogGooseLogger adapts goose's logger to structured logging.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// runMigrations applies any pending goose migrations before the server
// starts accepting requests.
func runMigrations(db *sql.DB, cfg config.DatabaseConfig, log *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{logger: log.With(slog.String("component", "migrations"))})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := cfg.MigrationsDir
	if dir == "" {
		dir = defaultMigrationsDir
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations from %s: %w", dir, err)
	}
	return nil
}
