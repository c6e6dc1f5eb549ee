package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arunika-app/arunika-api/internal/api"
	apiMiddleware "github.com/arunika-app/arunika-api/internal/api/middleware"
	"github.com/arunika-app/arunika-api/internal/api/shared"
)

// setupRouter builds the route tree. Catalog reads stay public with optional
// auth so a future principal-aware ranking can use the caller's identity;
// everything touching user-owned data sits behind RequireAuth.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.NewRecoverer(app.config.Server.Environment == "development"))

	authHandler := api.NewAuthHandler(app.provider, app.profiles, app.logger)
	userHandler := api.NewUserHandler(app.profiles, app.provider, app.logger)
	jobHandler := api.NewJobHandler(app.jobs, app.logger)
	courseHandler := api.NewCourseHandler(app.courses, app.logger)
	questionHandler := api.NewQuestionHandler(app.questions, app.logger)
	personalizationHandler := api.NewPersonalizationHandler(app.personalizationService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.provider)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Put("/update-password", authHandler.UpdatePassword)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.OptionalAuth)
				r.Get("/", jobHandler.List)
				r.Get("/{id}", jobHandler.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/", jobHandler.Create)
				r.Put("/{id}", jobHandler.Update)
				r.Delete("/{id}", jobHandler.Delete)
			})
		})

		r.Route("/skill-courses", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.OptionalAuth)
				r.Get("/", courseHandler.List)
				r.Get("/{id}", courseHandler.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/", courseHandler.Create)
				r.Put("/{id}", courseHandler.Update)
				r.Delete("/{id}", courseHandler.Delete)
			})
		})

		r.Route("/skill-questions", func(r chi.Router) {
			// The static categories route must precede the {id} match.
			r.Get("/categories", questionHandler.Categories)
			r.Get("/", questionHandler.List)
			r.Get("/{id}", questionHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/", questionHandler.Create)
				r.Put("/{id}", questionHandler.Update)
				r.Delete("/{id}", questionHandler.Delete)
			})
		})

		r.Route("/personalizations", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", personalizationHandler.List)
			r.Post("/", personalizationHandler.Create)
			r.Get("/{id}", personalizationHandler.Get)
			r.Delete("/{id}", personalizationHandler.Delete)
			r.Get("/{id}/jobs", personalizationHandler.ListJobs)
			r.Post("/{id}/jobs", personalizationHandler.CreateJob)
			r.Delete("/{id}/jobs/{recID}", personalizationHandler.DeleteJob)
			r.Get("/{id}/courses", personalizationHandler.ListCourses)
			r.Post("/{id}/courses", personalizationHandler.CreateCourse)
			r.Delete("/{id}/courses/{recID}", personalizationHandler.DeleteCourse)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"}, "Service healthy")
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithRouteNotFound(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithRouteNotFound(w, r)
	})

	return r
}
