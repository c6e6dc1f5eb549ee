package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/redact"
	"github.com/arunika-app/arunika-api/internal/service"
	"github.com/arunika-app/arunika-api/internal/service/auth"
	"github.com/arunika-app/arunika-api/internal/store"
)

// UserHandler handles the /users resource family. Ownership is direct: the
// path ID must equal the principal's ID, checked only after the profile row
// is proven to exist.
type UserHandler struct {
	profiles store.UserProfileStore
	provider auth.Provider
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profiles store.UserProfileStore, provider auth.Provider, log *slog.Logger) *UserHandler {
	if profiles == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("profile store cannot be nil for UserHandler")
	}
	if provider == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("provider cannot be nil for UserHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		profiles: profiles,
		provider: provider,
		logger:   log.With(slog.String("component", "user_handler")),
	}
}

// loadOwned fetches the profile at pathID and runs the ownership check
// through the shared resolution strategy. The resolver is the fetch itself,
// so a missing row surfaces as not-found before ownership is ever compared.
func (h *UserHandler) loadOwned(r *http.Request, principal auth.Principal, pathID uuid.UUID) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	err := service.AuthorizeOwner(r.Context(), principal.ID, func(ctx context.Context) (uuid.UUID, error) {
		p, err := h.profiles.GetByID(ctx, pathID)
		if err != nil {
			return uuid.Nil, err
		}
		profile = p
		return p.UserID, nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Get handles GET /users/{id} requests.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, pathID, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	profile, err := h.loadOwned(r, principal, pathID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load user")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, profile, "User retrieved successfully")
}

// Update handles PUT /users/{id} requests. Only name, pendidikan, and
// pekerjaan are mutable; email and role stay with the identity provider.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, pathID, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	profile, err := h.loadOwned(r, principal, pathID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load user")
		return
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Pendidikan != nil {
		profile.Pendidikan = *req.Pendidikan
	}
	if req.Pekerjaan != nil {
		profile.Pekerjaan = *req.Pekerjaan
	}

	if err := h.profiles.Update(r.Context(), profile); err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	log.Info("profile updated", slog.String("user_id", pathID.String()))
	shared.RespondWithSuccess(w, r, http.StatusOK, profile, "User updated successfully")
}

// Delete handles DELETE /users/{id} requests. The identity record goes
// first and its failure surfaces as an error, so a 200 always means the
// account is gone and a failed attempt can be retried with nothing lost.
// The profile row follows (the database cascades it too); repeating a
// completed delete is a 404 because the existence check fails first.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, pathID, ok := h.principalAndPathID(w, r)
	if !ok {
		return
	}

	if _, err := h.loadOwned(r, principal, pathID); err != nil {
		HandleAPIError(w, r, err, "Failed to load user")
		return
	}

	if err := h.provider.DeleteUser(r.Context(), pathID); err != nil && !errors.Is(err, store.ErrIdentityNotFound) {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}
	if err := h.profiles.Delete(r.Context(), pathID); err != nil && !errors.Is(err, store.ErrUserProfileNotFound) {
		// The identity is gone, which is what the success response
		// attests. The next delete attempt reaches the orphaned row.
		log.Error("failed to delete profile after identity removal",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", pathID.String()))
	}

	log.Info("user deleted", slog.String("user_id", pathID.String()))
	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "User deleted successfully")
}

// principalAndPathID extracts the principal and the {id} path parameter,
// writing the error response itself on failure.
func (h *UserHandler) principalAndPathID(w http.ResponseWriter, r *http.Request) (auth.Principal, uuid.UUID, bool) {
	principal, ok := getPrincipal(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return auth.Principal{}, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return auth.Principal{}, uuid.Nil, false
	}

	return principal, pathID, true
}
