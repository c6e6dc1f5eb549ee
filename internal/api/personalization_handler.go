package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/redact"
	"github.com/arunika-app/arunika-api/internal/service"
	"github.com/arunika-app/arunika-api/internal/service/auth"
)

// PersonalizationHandler handles the /personalizations resource family and
// its recommendation children. Every route requires a principal; ownership
// enforcement lives in the service layer, which resolves existence before
// ownership so absent rows surface as not-found to everyone.
type PersonalizationHandler struct {
	service *service.PersonalizationService
	logger  *slog.Logger
}

// NewPersonalizationHandler creates a new PersonalizationHandler.
func NewPersonalizationHandler(svc *service.PersonalizationService, log *slog.Logger) *PersonalizationHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("personalization service cannot be nil for PersonalizationHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PersonalizationHandler{
		service: svc,
		logger:  log.With(slog.String("component", "personalization_handler")),
	}
}

// List handles GET /personalizations requests, scoped to the principal's
// own assessments.
func (h *PersonalizationHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	q := r.URL.Query()
	pr := shared.Paginate(q.Get("page"), q.Get("limit"))

	items, total, err := h.service.ListByUser(r.Context(), principal.ID, pr.Offset, pr.Limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list personalizations")
		return
	}
	if items == nil {
		items = []domain.Personalization{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, ListResponse{
		Items:      items,
		Pagination: pr.DeriveResult(total),
	}, "Personalizations retrieved successfully")
}

// Create handles POST /personalizations requests. Recommendation generation
// runs synchronously; when it fails the assessment is still created and the
// response message says the children are missing.
func (h *PersonalizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := getPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	var req PersonalizationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	p, generated, err := h.service.Create(r.Context(), principal.ID, req.RoleCategory, req.Answers)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create personalization")
		return
	}

	message := "Personalization created successfully"
	if !generated {
		message = "Personalization created successfully, recommendations unavailable"
	}
	shared.RespondWithSuccess(w, r, http.StatusCreated, p, message)
}

// Get handles GET /personalizations/{id} requests.
func (h *PersonalizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), principal.ID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load personalization")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, p, "Personalization retrieved successfully")
}

// Delete handles DELETE /personalizations/{id} requests. Children go with
// the parent.
func (h *PersonalizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), principal.ID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete personalization")
		return
	}

	log.Info("personalization deleted", slog.String("personalization_id", id.String()))
	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Personalization deleted successfully")
}

// ListJobs handles GET /personalizations/{id}/jobs requests.
func (h *PersonalizationHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	recs, err := h.service.JobRecommendations(r.Context(), principal.ID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list job recommendations")
		return
	}
	if recs == nil {
		recs = []domain.JobRecommendation{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, recs, "Job recommendations retrieved successfully")
}

// ListCourses handles GET /personalizations/{id}/courses requests.
func (h *PersonalizationHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	recs, err := h.service.CourseRecommendations(r.Context(), principal.ID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list course recommendations")
		return
	}
	if recs == nil {
		recs = []domain.CourseRecommendation{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, recs, "Course recommendations retrieved successfully")
}

// CreateJob handles POST /personalizations/{id}/jobs requests for manually
// curated recommendations.
func (h *PersonalizationHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	var req JobRecommendationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	rec := &domain.JobRecommendation{
		Title:        req.Title,
		Company:      req.Company,
		RoleCategory: req.RoleCategory,
		Level:        req.Level,
		Score:        req.Score,
		Reason:       req.Reason,
	}
	if err := h.service.AddJobRecommendation(r.Context(), principal.ID, id, rec); err != nil {
		HandleAPIError(w, r, err, "Failed to create job recommendation")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, rec, "Job recommendation created successfully")
}

// CreateCourse handles POST /personalizations/{id}/courses requests.
func (h *PersonalizationHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	var req CourseRecommendationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	rec := &domain.CourseRecommendation{
		Title:    req.Title,
		Provider: req.Provider,
		Bidang:   req.Bidang,
		Level:    req.Level,
		Score:    req.Score,
		Reason:   req.Reason,
	}
	if err := h.service.AddCourseRecommendation(r.Context(), principal.ID, id, rec); err != nil {
		HandleAPIError(w, r, err, "Failed to create course recommendation")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, rec, "Course recommendation created successfully")
}

// DeleteJob handles DELETE /personalizations/{id}/jobs/{recID} requests.
func (h *PersonalizationHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	recID, err := getPathInt64(r, "recID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.DeleteJobRecommendation(r.Context(), principal.ID, id, recID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete job recommendation")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Job recommendation deleted successfully")
}

// DeleteCourse handles DELETE /personalizations/{id}/courses/{recID} requests.
func (h *PersonalizationHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	principal, id, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	recID, err := getPathInt64(r, "recID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.DeleteCourseRecommendation(r.Context(), principal.ID, id, recID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete course recommendation")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Course recommendation deleted successfully")
}

func (h *PersonalizationHandler) principalAndPathID(w http.ResponseWriter, r *http.Request) (auth.Principal, uuid.UUID, bool) {
	principal, ok := getPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return auth.Principal{}, uuid.Nil, false
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return auth.Principal{}, uuid.Nil, false
	}

	return principal, id, true
}
