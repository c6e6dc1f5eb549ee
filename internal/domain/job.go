package domain

import (
	"strings"
	"time"
)

// ValidJobLevels are the seniority levels a job posting may carry.
var ValidJobLevels = []string{"junior", "mid", "senior"}

// IsValidJobLevel reports whether level is one of ValidJobLevels.
func IsValidJobLevel(level string) bool {
	for _, l := range ValidJobLevels {
		if level == l {
			return true
		}
	}
	return false
}

// Job is a posting in the job catalog.
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	RoleCategory string    `json:"role_category"`
	Level        string    `json:"level,omitempty"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks required fields and the role-category/level whitelists.
func (j *Job) Validate() error {
	if j.Title == "" {
		return NewValidationError("title", "is required", nil)
	}
	if j.Company == "" {
		return NewValidationError("company", "is required", nil)
	}
	if !IsValidRoleCategory(j.RoleCategory) {
		return NewValidationError(
			"role_category",
			"must be one of: "+strings.Join(ValidRoleCategories, ", "),
			nil,
		)
	}
	if j.Level != "" && !IsValidJobLevel(j.Level) {
		return NewValidationError(
			"level",
			"must be one of: "+strings.Join(ValidJobLevels, ", "),
			nil,
		)
	}
	return nil
}
