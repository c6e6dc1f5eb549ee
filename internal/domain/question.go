package domain

import (
	"strings"
	"time"
)

// ValidTraits are the personality/skill traits a question may probe.
// The order is part of the API contract: validation errors list them verbatim.
var ValidTraits = []string{"analysis", "innovation", "collab", "creative"}

// ValidRoleCategories are the career tracks the question bank covers.
var ValidRoleCategories = []string{
	"Backend Developer",
	"UI/UX Designer",
	"Frontend Developer",
	"Product Manager",
}

// IsValidTrait reports whether trait is one of ValidTraits.
func IsValidTrait(trait string) bool {
	for _, t := range ValidTraits {
		if trait == t {
			return true
		}
	}
	return false
}

// IsValidRoleCategory reports whether rc is one of ValidRoleCategories.
func IsValidRoleCategory(rc string) bool {
	for _, r := range ValidRoleCategories {
		if rc == r {
			return true
		}
	}
	return false
}

// SkillQuestion is one entry of the skill-assessment question bank.
type SkillQuestion struct {
	ID           int64     `json:"id"`
	Text         string    `json:"text"`
	Trait        string    `json:"trait"`
	Category     string    `json:"category"`
	RoleCategory string    `json:"role_category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSkillQuestion creates a SkillQuestion and validates it.
// The ID is assigned by the store on insert.
func NewSkillQuestion(text, trait, category, roleCategory string) (*SkillQuestion, error) {
	q := &SkillQuestion{
		Text:         text,
		Trait:        trait,
		Category:     category,
		RoleCategory: roleCategory,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the question's fields against the required set and the
// trait/role-category whitelists.
func (q *SkillQuestion) Validate() error {
	if q.Text == "" {
		return NewValidationError("text", "is required", nil)
	}
	if q.Category == "" {
		return NewValidationError("category", "is required", nil)
	}
	if !IsValidTrait(q.Trait) {
		return NewValidationError(
			"trait",
			"must be one of: "+strings.Join(ValidTraits, ", "),
			nil,
		)
	}
	if !IsValidRoleCategory(q.RoleCategory) {
		return NewValidationError(
			"role_category",
			"must be one of: "+strings.Join(ValidRoleCategories, ", "),
			nil,
		)
	}
	return nil
}
