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

// CourseHandler handles the /skill-courses catalog. Reads are public; writes
// require an authenticated principal, enforced by the router.
type CourseHandler struct {
	courses store.CourseStore
	logger  *slog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses store.CourseStore, log *slog.Logger) *CourseHandler {
	if courses == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("course store cannot be nil for CourseHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CourseHandler{
		courses: courses,
		logger:  log.With(slog.String("component", "course_handler")),
	}
}

// List handles GET /skill-courses requests with optional bidang and level
// filters and offset pagination.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pr := shared.Paginate(q.Get("page"), q.Get("limit"))
	filter := store.CourseFilter{
		Bidang: q.Get("bidang"),
		Level:  q.Get("level"),
	}

	courses, total, err := h.courses.List(r.Context(), filter, pr.Offset, pr.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list courses")
		return
	}
	if courses == nil {
		courses = []domain.SkillCourse{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, ListResponse{
		Items:      courses,
		Pagination: pr.DeriveResult(total),
	}, "Courses retrieved successfully")
}

// Get handles GET /skill-courses/{id} requests.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load course")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, course, "Course retrieved successfully")
}

// Create handles POST /skill-courses requests.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	course := &domain.SkillCourse{
		Title:       req.Title,
		Provider:    req.Provider,
		Bidang:      req.Bidang,
		Level:       req.Level,
		URL:         req.URL,
		Description: req.Description,
	}
	if err := course.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.courses.Create(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "Failed to create course")
		return
	}

	log.Info("course created", slog.Int64("course_id", course.ID))
	shared.RespondWithSuccess(w, r, http.StatusCreated, course, "Course created successfully")
}

// Update handles PUT /skill-courses/{id} requests with a full replacement
// payload.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CourseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	course := &domain.SkillCourse{
		ID:          id,
		Title:       req.Title,
		Provider:    req.Provider,
		Bidang:      req.Bidang,
		Level:       req.Level,
		URL:         req.URL,
		Description: req.Description,
	}
	if err := course.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.courses.Update(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "Failed to update course")
		return
	}

	log.Info("course updated", slog.Int64("course_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, course, "Course updated successfully")
}

// Delete handles DELETE /skill-courses/{id} requests.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.courses.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete course")
		return
	}

	log.Info("course deleted", slog.Int64("course_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Course deleted successfully")
}
