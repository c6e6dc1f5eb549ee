package api

import (
	"log/slog"
	"net/http"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/redact"
	"github.com/arunika-app/arunika-api/internal/store"
)

// JobHandler handles the /jobs catalog. Reads are public; writes require an
// authenticated principal, enforced by the router.
type JobHandler struct {
	jobs   store.JobStore
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs store.JobStore, log *slog.Logger) *JobHandler {
	if jobs == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("job store cannot be nil for JobHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &JobHandler{
		jobs:   jobs,
		logger: log.With(slog.String("component", "job_handler")),
	}
}

// List handles GET /jobs requests with optional role_category and level
// filters and offset pagination.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pr := shared.Paginate(q.Get("page"), q.Get("limit"))
	filter := store.JobFilter{
		RoleCategory: q.Get("role_category"),
		Level:        q.Get("level"),
	}

	jobs, total, err := h.jobs.List(r.Context(), filter, pr.Offset, pr.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, ListResponse{
		Items:      jobs,
		Pagination: pr.DeriveResult(total),
	}, "Jobs retrieved successfully")
}

// Get handles GET /jobs/{id} requests.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	job, err := h.jobs.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load job")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, job, "Job retrieved successfully")
}

// Create handles POST /jobs requests.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req JobRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	job := &domain.Job{
		Title:        req.Title,
		Company:      req.Company,
		RoleCategory: req.RoleCategory,
		Level:        req.Level,
		Location:     req.Location,
		Description:  req.Description,
		URL:          req.URL,
	}
	if err := job.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.jobs.Create(r.Context(), job); err != nil {
		HandleAPIError(w, r, err, "Failed to create job")
		return
	}

	log.Info("job created", slog.Int64("job_id", job.ID))
	shared.RespondWithSuccess(w, r, http.StatusCreated, job, "Job created successfully")
}

// Update handles PUT /jobs/{id} requests. The payload replaces every mutable
// field, so callers send the full representation.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req JobRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	job := &domain.Job{
		ID:           id,
		Title:        req.Title,
		Company:      req.Company,
		RoleCategory: req.RoleCategory,
		Level:        req.Level,
		Location:     req.Location,
		Description:  req.Description,
		URL:          req.URL,
	}
	if err := job.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.jobs.Update(r.Context(), job); err != nil {
		HandleAPIError(w, r, err, "Failed to update job")
		return
	}

	log.Info("job updated", slog.Int64("job_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, job, "Job updated successfully")
}

// Delete handles DELETE /jobs/{id} requests.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete job")
		return
	}

	log.Info("job deleted", slog.Int64("job_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Job deleted successfully")
}
