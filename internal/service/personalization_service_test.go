package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/generation"
	"github.com/arunika-app/arunika-api/internal/store"
)

// fakePersonalizationStore is an in-memory PersonalizationStore.
type fakePersonalizationStore struct {
	records   map[uuid.UUID]*domain.Personalization
	createErr error
}

func newFakePersonalizationStore() *fakePersonalizationStore {
	return &fakePersonalizationStore{records: make(map[uuid.UUID]*domain.Personalization)}
}

func (f *fakePersonalizationStore) Create(ctx context.Context, p *domain.Personalization) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records[p.ID] = p
	return nil
}

func (f *fakePersonalizationStore) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Personalization, int, error) {
	var all []domain.Personalization
	for _, p := range f.records {
		if p.UserID == userID {
			all = append(all, *p)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakePersonalizationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Personalization, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, store.ErrPersonalizationNotFound
	}
	return p, nil
}

func (f *fakePersonalizationStore) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	p, ok := f.records[id]
	if !ok {
		return uuid.Nil, store.ErrPersonalizationNotFound
	}
	return p.UserID, nil
}

func (f *fakePersonalizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return store.ErrPersonalizationNotFound
	}
	delete(f.records, id)
	return nil
}

// fakeRecommendationStore is an in-memory RecommendationStore.
type fakeRecommendationStore struct {
	jobs    map[uuid.UUID][]domain.JobRecommendation
	courses map[uuid.UUID][]domain.CourseRecommendation
	nextID  int64
	saveErr error
}

func newFakeRecommendationStore() *fakeRecommendationStore {
	return &fakeRecommendationStore{
		jobs:    make(map[uuid.UUID][]domain.JobRecommendation),
		courses: make(map[uuid.UUID][]domain.CourseRecommendation),
	}
}

func (f *fakeRecommendationStore) CreateJobRecommendations(ctx context.Context, recs []*domain.JobRecommendation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, rec := range recs {
		f.nextID++
		rec.ID = f.nextID
		f.jobs[rec.PersonalizationID] = append(f.jobs[rec.PersonalizationID], *rec)
	}
	return nil
}

func (f *fakeRecommendationStore) ListJobRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.JobRecommendation, error) {
	return f.jobs[personalizationID], nil
}

func (f *fakeRecommendationStore) DeleteJobRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error {
	recs := f.jobs[personalizationID]
	for i, rec := range recs {
		if rec.ID == id {
			f.jobs[personalizationID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return store.ErrRecommendationNotFound
}

func (f *fakeRecommendationStore) CreateCourseRecommendations(ctx context.Context, recs []*domain.CourseRecommendation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, rec := range recs {
		f.nextID++
		rec.ID = f.nextID
		f.courses[rec.PersonalizationID] = append(f.courses[rec.PersonalizationID], *rec)
	}
	return nil
}

func (f *fakeRecommendationStore) ListCourseRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.CourseRecommendation, error) {
	return f.courses[personalizationID], nil
}

func (f *fakeRecommendationStore) DeleteCourseRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error {
	recs := f.courses[personalizationID]
	for i, rec := range recs {
		if rec.ID == id {
			f.courses[personalizationID] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return store.ErrRecommendationNotFound
}

// stubRecommender returns a fixed set or error.
type stubRecommender struct {
	set *generation.RecommendationSet
	err error
}

func (s *stubRecommender) Recommend(ctx context.Context, p *domain.Personalization) (*generation.RecommendationSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Stamp the parent ID the way the real recommender does.
	for _, j := range s.set.Jobs {
		j.PersonalizationID = p.ID
	}
	for _, c := range s.set.Courses {
		c.PersonalizationID = p.ID
	}
	return s.set, nil
}

func validAnswers() []domain.Answer {
	return []domain.Answer{
		{QuestionID: 1, Trait: "analysis", Score: 4},
		{QuestionID: 2, Trait: "creative", Score: 5},
		{QuestionID: 3, Trait: "analysis", Score: 3},
	}
}

func TestPersonalizationService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("persists assessment and recommendations", func(t *testing.T) {
		personalizations := newFakePersonalizationStore()
		recommendations := newFakeRecommendationStore()
		recommender := &stubRecommender{set: &generation.RecommendationSet{
			Jobs: []*domain.JobRecommendation{
				{Title: "Data Analyst", Company: "Acme", RoleCategory: "Backend Developer", Score: 0.9},
			},
			Courses: []*domain.CourseRecommendation{
				{Title: "SQL Dasar", Provider: "Dicoding", Score: 0.8},
			},
		}}
		svc := NewPersonalizationService(personalizations, recommendations, recommender, nil)

		p, generated, err := svc.Create(ctx, userID, "Backend Developer", validAnswers())
		require.NoError(t, err)
		assert.True(t, generated)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, map[string]int{"analysis": 7, "creative": 5}, p.Result)

		jobs, err := svc.JobRecommendations(ctx, userID, p.ID)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Data Analyst", jobs[0].Title)

		courses, err := svc.CourseRecommendations(ctx, userID, p.ID)
		require.NoError(t, err)
		require.Len(t, courses, 1)
	})

	t.Run("recommender failure is non-fatal", func(t *testing.T) {
		personalizations := newFakePersonalizationStore()
		recommendations := newFakeRecommendationStore()
		recommender := &stubRecommender{err: generation.ErrGenerationFailed}
		svc := NewPersonalizationService(personalizations, recommendations, recommender, nil)

		p, generated, err := svc.Create(ctx, userID, "Backend Developer", validAnswers())
		require.NoError(t, err)
		assert.False(t, generated)

		jobs, err := svc.JobRecommendations(ctx, userID, p.ID)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("nil recommender skips generation", func(t *testing.T) {
		personalizations := newFakePersonalizationStore()
		recommendations := newFakeRecommendationStore()
		svc := NewPersonalizationService(personalizations, recommendations, nil, nil)

		_, generated, err := svc.Create(ctx, userID, "Backend Developer", validAnswers())
		require.NoError(t, err)
		assert.False(t, generated)
	})

	t.Run("invalid role category rejected", func(t *testing.T) {
		personalizations := newFakePersonalizationStore()
		recommendations := newFakeRecommendationStore()
		svc := NewPersonalizationService(personalizations, recommendations, nil, nil)

		_, _, err := svc.Create(ctx, userID, "Astronaut", validAnswers())
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		personalizations := newFakePersonalizationStore()
		personalizations.createErr = errors.New("connection refused")
		recommendations := newFakeRecommendationStore()
		svc := NewPersonalizationService(personalizations, recommendations, nil, nil)

		_, _, err := svc.Create(ctx, userID, "Backend Developer", validAnswers())
		assert.Error(t, err)
	})
}

func TestPersonalizationService_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ownerID := uuid.New()
	intruderID := uuid.New()

	personalizations := newFakePersonalizationStore()
	recommendations := newFakeRecommendationStore()
	svc := NewPersonalizationService(personalizations, recommendations, nil, nil)

	p, _, err := svc.Create(ctx, ownerID, "Backend Developer", validAnswers())
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.Get(ctx, ownerID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("intruder gets access denied, not not-found", func(t *testing.T) {
		_, err := svc.Get(ctx, intruderID, p.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing record is not-found even for intruder", func(t *testing.T) {
		_, err := svc.Get(ctx, intruderID, uuid.New())
		assert.ErrorIs(t, err, store.ErrPersonalizationNotFound)
	})

	t.Run("child routes check ownership through the parent", func(t *testing.T) {
		_, err := svc.JobRecommendations(ctx, intruderID, p.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = svc.CourseRecommendations(ctx, intruderID, p.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)

		err = svc.DeleteJobRecommendation(ctx, intruderID, p.ID, 1)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("delete then repeat delete is not-found", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, ownerID, p.ID))
		err := svc.Delete(ctx, ownerID, p.ID)
		assert.ErrorIs(t, err, store.ErrPersonalizationNotFound)
	})
}
