package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/arunika-app/arunika-api/internal/api"
	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/arunika-app/arunika-api/internal/generation"
	"github.com/arunika-app/arunika-api/internal/platform/gemini"
	"github.com/arunika-app/arunika-api/internal/platform/postgres"
	"github.com/arunika-app/arunika-api/internal/service"
	"github.com/arunika-app/arunika-api/internal/service/auth"
)

// application holds the long-lived dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	provider auth.Provider

	profiles  *postgres.UserProfileStore
	jobs      *postgres.JobStore
	courses   *postgres.CourseStore
	questions *postgres.QuestionStore

	personalizationService *service.PersonalizationService
}

// newApplication wires every component from configuration. The recommender
// is optional: without a Gemini API key the personalization service runs
// without generated suggestions.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, cfg.Database, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	identities := postgres.NewIdentityStore(db, log)
	profiles := postgres.NewUserProfileStore(db, log)
	jobs := postgres.NewJobStore(db, log)
	courses := postgres.NewCourseStore(db, log)
	questions := postgres.NewQuestionStore(db, log)
	personalizations := postgres.NewPersonalizationStore(db, log)
	recommendations := postgres.NewRecommendationStore(db, log)

	provider, err := auth.NewJWTProvider(cfg.Auth, identities)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create auth provider: %w", err)
	}

	var recommender generation.Recommender
	if cfg.LLM.GeminiAPIKey != "" {
		r, err := gemini.NewRecommender(ctx, log, cfg.LLM)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create recommender: %w", err)
		}
		recommender = r
	} else {
		log.Warn("no Gemini API key configured, recommendation generation disabled")
	}

	personalizationService := service.NewPersonalizationService(
		personalizations, recommendations, recommender, log)

	api.SetDevelopmentMode(cfg.Server.Environment == "development")

	return &application{
		config:                 cfg,
		logger:                 log,
		db:                     db,
		provider:               provider,
		profiles:               profiles,
		jobs:                   jobs,
		courses:                courses,
		questions:              questions,
		personalizationService: personalizationService,
	}, nil
}

// close releases the application's resources.
func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
