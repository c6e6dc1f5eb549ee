// Package main implements the entry point for the Arunika API server, which
// serves career catalogs, skill assessments, and LLM-generated job and course
// recommendations.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application, and serves until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("environment", cfg.Server.Environment),
		slog.Bool("llm_configured", cfg.LLM.GeminiAPIKey != ""))

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.close()

	return app.startHTTPServer(ctx, app.setupRouter())
}
