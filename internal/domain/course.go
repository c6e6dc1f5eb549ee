package domain

import (
	"strings"
	"time"
)

// ValidCourseLevels are the difficulty levels a skill course may carry.
var ValidCourseLevels = []string{"beginner", "intermediate", "advanced"}

// IsValidCourseLevel reports whether level is one of ValidCourseLevels.
func IsValidCourseLevel(level string) bool {
	for _, l := range ValidCourseLevels {
		if level == l {
			return true
		}
	}
	return false
}

// SkillCourse is a learning resource in the course catalog. Bidang is the
// field of study the course belongs to (e.g. "pemrograman", "desain").
type SkillCourse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	Bidang      string    `json:"bidang"`
	Level       string    `json:"level,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks required fields and the level whitelist.
func (c *SkillCourse) Validate() error {
	if c.Title == "" {
		return NewValidationError("title", "is required", nil)
	}
	if c.Provider == "" {
		return NewValidationError("provider", "is required", nil)
	}
	if c.Bidang == "" {
		return NewValidationError("bidang", "is required", nil)
	}
	if c.Level != "" && !IsValidCourseLevel(c.Level) {
		return NewValidationError(
			"level",
			"must be one of: "+strings.Join(ValidCourseLevels, ", "),
			nil,
		)
	}
	return nil
}
