package api

import (
	"time"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/service/auth"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=6"`
	Name       string `json:"name"       validate:"required"`
	Pendidikan string `json:"pendidikan" validate:"omitempty"`
	Pekerjaan  string `json:"pekerjaan"  validate:"omitempty"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the payload for refreshing a session.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdatePasswordRequest is the payload for changing or resetting a password.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ForgotPasswordRequest is the payload for requesting a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse is the identity part of an auth response.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse carries the issued token pair.
type SessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponse is the data payload for register, login, and refresh.
type AuthResponse struct {
	User    UserResponse        `json:"user"`
	Profile *domain.UserProfile `json:"profile,omitempty"`
	Session SessionResponse     `json:"session"`
}

// UpdateProfileRequest is the payload for PUT /users/{id}. All fields are
// optional; absent ones keep their current value.
type UpdateProfileRequest struct {
	Name       *string `json:"name"       validate:"omitempty,min=1"`
	Pendidikan *string `json:"pendidikan"`
	Pekerjaan  *string `json:"pekerjaan"`
}

// JobRequest is the payload for creating or updating a job.
type JobRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	RoleCategory string `json:"role_category"`
	Level        string `json:"level"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	URL          string `json:"url"`
}

// CourseRequest is the payload for creating or updating a skill course.
type CourseRequest struct {
	Title       string `json:"title"`
	Provider    string `json:"provider"`
	Bidang      string `json:"bidang"`
	Level       string `json:"level"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// QuestionRequest is the payload for creating a skill question.
type QuestionRequest struct {
	Text         string `json:"text"`
	Trait        string `json:"trait"`
	Category     string `json:"category"`
	RoleCategory string `json:"role_category"`
}

// QuestionUpdateRequest is the payload for PUT /skill-questions/{id}.
// Absent fields keep their current value; provided ones face the same
// whitelists as creation.
type QuestionUpdateRequest struct {
	Text         *string `json:"text"`
	Trait        *string `json:"trait"`
	Category     *string `json:"category"`
	RoleCategory *string `json:"role_category"`
}

// QuestionListResponse is the data payload for the question list route.
type QuestionListResponse struct {
	Questions []domain.SkillQuestion `json:"questions"`
	Count     int                    `json:"count"`
}

// ListResponse is the data payload for paginated collection routes.
type ListResponse struct {
	Items      any `json:"items"`
	Pagination any `json:"pagination"`
}

// PersonalizationRequest is the payload for creating a personalization.
type PersonalizationRequest struct {
	RoleCategory string          `json:"role_category"`
	Answers      []domain.Answer `json:"answers"`
}

// JobRecommendationRequest is the payload for manually adding a job
// recommendation child.
type JobRecommendationRequest struct {
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	RoleCategory string  `json:"role_category"`
	Level        string  `json:"level"`
	Score        float64 `json:"score"`
	Reason       string  `json:"reason"`
}

// CourseRecommendationRequest is the payload for manually adding a course
// recommendation child.
type CourseRecommendationRequest struct {
	Title    string  `json:"title"`
	Provider string  `json:"provider"`
	Bidang   string  `json:"bidang"`
	Level    string  `json:"level"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}

// newUserResponse converts a principal into the identity response shape.
func newUserResponse(p auth.Principal) UserResponse {
	return UserResponse{ID: p.ID.String(), Email: p.Email}
}

// newSessionResponse converts an issued session into its response shape.
func newSessionResponse(s auth.Session) SessionResponse {
	return SessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	}
}
