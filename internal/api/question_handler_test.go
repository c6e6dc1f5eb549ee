package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/store"
)

// fakeQuestionStore is an in-memory QuestionStore keeping insertion order,
// which matches the ascending-id ordering of the real store.
type fakeQuestionStore struct {
	questions []domain.SkillQuestion
	nextID    int64
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{nextID: 1}
}

func (f *fakeQuestionStore) List(_ context.Context, roleCategory string) ([]domain.SkillQuestion, error) {
	var out []domain.SkillQuestion
	for _, q := range f.questions {
		if roleCategory == "" || q.RoleCategory == roleCategory {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, q := range f.questions {
		if !seen[q.RoleCategory] {
			seen[q.RoleCategory] = true
			out = append(out, q.RoleCategory)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id int64) (*domain.SkillQuestion, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, store.ErrQuestionNotFound
}

func (f *fakeQuestionStore) Create(_ context.Context, q *domain.SkillQuestion) error {
	q.ID = f.nextID
	f.nextID++
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeQuestionStore) Update(_ context.Context, q *domain.SkillQuestion) error {
	for i := range f.questions {
		if f.questions[i].ID == q.ID {
			f.questions[i] = *q
			return nil
		}
	}
	return store.ErrQuestionNotFound
}

func (f *fakeQuestionStore) Delete(_ context.Context, id int64) error {
	for i := range f.questions {
		if f.questions[i].ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return store.ErrQuestionNotFound
}

func seedQuestions(t *testing.T, s *fakeQuestionStore) {
	t.Helper()
	seed := []struct{ text, trait, category, role string }{
		{"How do you debug a failing API?", "analysis", "technical", "Backend Developer"},
		{"Describe a UI you reworked.", "creative", "design", "Frontend Developer"},
		{"How do you split work in a team?", "collab", "teamwork", "Frontend Developer"},
	}
	for _, q := range seed {
		question, err := domain.NewSkillQuestion(q.text, q.trait, q.category, q.role)
		require.NoError(t, err)
		require.NoError(t, s.Create(context.Background(), question))
	}
}

func TestQuestionHandler_List(t *testing.T) {
	t.Parallel()

	questions := newFakeQuestionStore()
	seedQuestions(t, questions)
	handler := NewQuestionHandler(questions, nil)

	t.Run("filter by role category returns ascending ids", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/skill-questions?role_category=Frontend+Developer", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Nil(t, env.Error)

		var data QuestionListResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 2, data.Count)
		require.Len(t, data.Questions, 2)
		assert.Less(t, data.Questions[0].ID, data.Questions[1].ID)
		for _, q := range data.Questions {
			assert.Equal(t, "Frontend Developer", q.RoleCategory)
		}
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/skill-questions", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var data QuestionListResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
		assert.Equal(t, 3, data.Count)
	})

	t.Run("unknown category yields empty list not error", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/skill-questions?role_category=Product+Manager", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var data QuestionListResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
		assert.Equal(t, 0, data.Count)
		assert.NotNil(t, data.Questions)
	})
}

func TestQuestionHandler_Categories(t *testing.T) {
	t.Parallel()

	questions := newFakeQuestionStore()
	seedQuestions(t, questions)
	handler := NewQuestionHandler(questions, nil)

	req := httptest.NewRequest("GET", "/skill-questions/categories", nil)
	rec := httptest.NewRecorder()
	handler.Categories(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &categories))
	assert.ElementsMatch(t, []string{"Backend Developer", "Frontend Developer"}, categories)
}

func TestQuestionHandler_Get(t *testing.T) {
	t.Parallel()

	questions := newFakeQuestionStore()
	seedQuestions(t, questions)
	handler := NewQuestionHandler(questions, nil)

	t.Run("found", func(t *testing.T) {
		req := withPathParams(httptest.NewRequest("GET", "/skill-questions/1", nil),
			map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var q domain.SkillQuestion
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &q))
		assert.Equal(t, int64(1), q.ID)
	})

	t.Run("absent is 404", func(t *testing.T) {
		req := withPathParams(httptest.NewRequest("GET", "/skill-questions/999", nil),
			map[string]string{"id": "999"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "Question not found", *env.Error)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		req := withPathParams(httptest.NewRequest("GET", "/skill-questions/abc", nil),
			map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQuestionHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("valid question is created", func(t *testing.T) {
		questions := newFakeQuestionStore()
		handler := NewQuestionHandler(questions, nil)

		body, _ := json.Marshal(QuestionRequest{
			Text:         "How do you prioritize a backlog?",
			Trait:        "analysis",
			Category:     "product",
			RoleCategory: "Product Manager",
		})
		req := httptest.NewRequest("POST", "/skill-questions", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var q domain.SkillQuestion
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &q))
		assert.Equal(t, int64(1), q.ID)
	})

	t.Run("unknown trait lists the valid ones", func(t *testing.T) {
		questions := newFakeQuestionStore()
		handler := NewQuestionHandler(questions, nil)

		body, _ := json.Marshal(QuestionRequest{
			Text:         "Some question",
			Trait:        "bogus",
			Category:     "misc",
			RoleCategory: "Backend Developer",
		})
		req := httptest.NewRequest("POST", "/skill-questions", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "trait must be one of: analysis, innovation, collab, creative", *env.Error)
		assert.Empty(t, questions.questions)
	})

	t.Run("unknown role category rejected", func(t *testing.T) {
		questions := newFakeQuestionStore()
		handler := NewQuestionHandler(questions, nil)

		body, _ := json.Marshal(QuestionRequest{
			Text:         "Some question",
			Trait:        "collab",
			Category:     "misc",
			RoleCategory: "Astronaut",
		})
		req := httptest.NewRequest("POST", "/skill-questions", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Contains(t, *env.Error, "role_category must be one of:")
	})
}

func TestQuestionHandler_Update(t *testing.T) {
	t.Parallel()

	questions := newFakeQuestionStore()
	seedQuestions(t, questions)
	handler := NewQuestionHandler(questions, nil)

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		newText := "How do you trace a production incident?"
		body, _ := json.Marshal(QuestionUpdateRequest{Text: &newText})
		req := withPathParams(httptest.NewRequest("PUT", "/skill-questions/1", bytes.NewReader(body)),
			map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var q domain.SkillQuestion
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &q))
		assert.Equal(t, newText, q.Text)
		assert.Equal(t, "analysis", q.Trait)
	})

	t.Run("provided trait still faces the whitelist", func(t *testing.T) {
		badTrait := "bogus"
		body, _ := json.Marshal(QuestionUpdateRequest{Trait: &badTrait})
		req := withPathParams(httptest.NewRequest("PUT", "/skill-questions/1", bytes.NewReader(body)),
			map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		handler.Update(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("absent question is 404", func(t *testing.T) {
		newText := "anything"
		body, _ := json.Marshal(QuestionUpdateRequest{Text: &newText})
		req := withPathParams(httptest.NewRequest("PUT", "/skill-questions/999", bytes.NewReader(body)),
			map[string]string{"id": "999"})
		rec := httptest.NewRecorder()
		handler.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestQuestionHandler_Delete(t *testing.T) {
	t.Parallel()

	questions := newFakeQuestionStore()
	seedQuestions(t, questions)
	handler := NewQuestionHandler(questions, nil)

	deleteReq := func() *httptest.ResponseRecorder {
		req := withPathParams(httptest.NewRequest("DELETE", "/skill-questions/2", nil),
			map[string]string{"id": "2"})
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)
		return rec
	}

	rec := deleteReq()
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))

	// Repeating the delete hits the absence check, not idempotent success.
	rec = deleteReq()
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
