package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkillQuestion(t *testing.T) {
	t.Parallel()

	q, err := NewSkillQuestion(
		"Saya senang memecah masalah besar menjadi bagian kecil",
		"analysis",
		"problem-solving",
		"Backend Developer",
	)
	require.NoError(t, err)
	assert.Equal(t, "analysis", q.Trait)
	assert.False(t, q.CreatedAt.IsZero())
}

func TestSkillQuestionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*SkillQuestion)
		wantError string
	}{
		{
			name:   "valid question",
			mutate: func(q *SkillQuestion) {},
		},
		{
			name:      "missing text",
			mutate:    func(q *SkillQuestion) { q.Text = "" },
			wantError: "text is required",
		},
		{
			name:      "missing category",
			mutate:    func(q *SkillQuestion) { q.Category = "" },
			wantError: "category is required",
		},
		{
			name:      "bogus trait lists valid values verbatim",
			mutate:    func(q *SkillQuestion) { q.Trait = "bogus" },
			wantError: "trait must be one of: analysis, innovation, collab, creative",
		},
		{
			name:      "bogus role category",
			mutate:    func(q *SkillQuestion) { q.RoleCategory = "Data Scientist" },
			wantError: "role_category must be one of: Backend Developer, UI/UX Designer, Frontend Developer, Product Manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := &SkillQuestion{
				Text:         "contoh pertanyaan",
				Trait:        "creative",
				Category:     "umum",
				RoleCategory: "Frontend Developer",
			}
			tt.mutate(q)

			err := q.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantError, err.Error())
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestTraitAndRoleWhitelists(t *testing.T) {
	t.Parallel()

	for _, trait := range ValidTraits {
		assert.True(t, IsValidTrait(trait))
	}
	assert.False(t, IsValidTrait("Analysis")) // case sensitive

	for _, rc := range ValidRoleCategories {
		assert.True(t, IsValidRoleCategory(rc))
	}
	assert.False(t, IsValidRoleCategory("backend developer"))
}
