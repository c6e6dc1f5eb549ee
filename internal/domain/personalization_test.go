package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswers() []Answer {
	return []Answer{
		{QuestionID: 1, Trait: "analysis", Score: 4},
		{QuestionID: 2, Trait: "analysis", Score: 3},
		{QuestionID: 3, Trait: "creative", Score: 5},
		{QuestionID: 4, Trait: "collab", Score: 2},
	}
}

func TestNewPersonalization(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	p, err := NewPersonalization(userID, "Backend Developer", validAnswers())
	require.NoError(t, err)

	assert.Equal(t, userID, p.UserID)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, map[string]int{"analysis": 7, "creative": 5, "collab": 2}, p.Result)
}

func TestNewPersonalizationValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		userID       uuid.UUID
		roleCategory string
		answers      []Answer
	}{
		{
			name:         "nil user",
			userID:       uuid.Nil,
			roleCategory: "Backend Developer",
			answers:      validAnswers(),
		},
		{
			name:         "invalid role category",
			userID:       uuid.New(),
			roleCategory: "Astronaut",
			answers:      validAnswers(),
		},
		{
			name:         "empty answers",
			userID:       uuid.New(),
			roleCategory: "Backend Developer",
			answers:      nil,
		},
		{
			name:         "invalid trait",
			userID:       uuid.New(),
			roleCategory: "Backend Developer",
			answers:      []Answer{{QuestionID: 1, Trait: "charm", Score: 3}},
		},
		{
			name:         "negative score",
			userID:       uuid.New(),
			roleCategory: "Backend Developer",
			answers:      []Answer{{QuestionID: 1, Trait: "analysis", Score: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewPersonalization(tt.userID, tt.roleCategory, tt.answers)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidID))
		})
	}
}

func TestJobRecommendationValidate(t *testing.T) {
	t.Parallel()

	rec := &JobRecommendation{
		PersonalizationID: uuid.New(),
		Title:             "Backend Engineer",
		Company:           "PT Maju Bersama",
		RoleCategory:      "Backend Developer",
		Score:             0.87,
	}
	assert.NoError(t, rec.Validate())

	rec.Score = 1.2
	assert.Error(t, rec.Validate())

	rec.Score = 0.5
	rec.Title = ""
	assert.Error(t, rec.Validate())

	rec.Title = "Backend Engineer"
	rec.PersonalizationID = uuid.Nil
	assert.Error(t, rec.Validate())
}

func TestCourseRecommendationValidate(t *testing.T) {
	t.Parallel()

	rec := &CourseRecommendation{
		PersonalizationID: uuid.New(),
		Title:             "Belajar Go untuk Backend",
		Provider:          "Dicoding",
		Bidang:            "pemrograman",
		Score:             0.9,
	}
	assert.NoError(t, rec.Validate())

	rec.Score = -0.1
	assert.Error(t, rec.Validate())
}
