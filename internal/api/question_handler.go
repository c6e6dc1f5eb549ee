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

// QuestionHandler handles the /skill-questions bank. Reads are public; writes
// require an authenticated principal, enforced by the router.
type QuestionHandler struct {
	questions store.QuestionStore
	logger    *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questions store.QuestionStore, log *slog.Logger) *QuestionHandler {
	if questions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("question store cannot be nil for QuestionHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &QuestionHandler{
		questions: questions,
		logger:    log.With(slog.String("component", "question_handler")),
	}
}

// List handles GET /skill-questions requests. The bank is small enough that
// the route returns every matching question in one response, with a count
// instead of pagination metadata.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.List(r.Context(), r.URL.Query().Get("role_category"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list questions")
		return
	}
	if questions == nil {
		questions = []domain.SkillQuestion{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, QuestionListResponse{
		Questions: questions,
		Count:     len(questions),
	}, "Questions retrieved successfully")
}

// Categories handles GET /skill-questions/categories requests.
func (h *QuestionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.questions.Categories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []string{}
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, categories, "Categories retrieved successfully")
}

// Get handles GET /skill-questions/{id} requests.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	question, err := h.questions.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load question")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, question, "Question retrieved successfully")
}

// Create handles POST /skill-questions requests.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req QuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	question, err := domain.NewSkillQuestion(req.Text, req.Trait, req.Category, req.RoleCategory)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.questions.Create(r.Context(), question); err != nil {
		HandleAPIError(w, r, err, "Failed to create question")
		return
	}

	log.Info("question created", slog.Int64("question_id", question.ID))
	shared.RespondWithSuccess(w, r, http.StatusCreated, question, "Question created successfully")
}

// Update handles PUT /skill-questions/{id} requests. Fields absent from the
// payload keep their current value.
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req QuestionUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	question, err := h.questions.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load question")
		return
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Trait != nil {
		question.Trait = *req.Trait
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.RoleCategory != nil {
		question.RoleCategory = *req.RoleCategory
	}
	if err := question.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.questions.Update(r.Context(), question); err != nil {
		HandleAPIError(w, r, err, "Failed to update question")
		return
	}

	log.Info("question updated", slog.Int64("question_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, question, "Question updated successfully")
}

// Delete handles DELETE /skill-questions/{id} requests.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete question")
		return
	}

	log.Info("question deleted", slog.Int64("question_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Question deleted successfully")
}
