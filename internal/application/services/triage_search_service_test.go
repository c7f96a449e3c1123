package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aarogyaai/backend/internal/adapters/fallback"
	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockTriageProvider struct {
	mock.Mock
}

func (m *MockTriageProvider) Classify(ctx context.Context, symptoms string) (*entities.Suggestion, error) {
	args := m.Called(ctx, symptoms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Suggestion), args.Error(1)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDoctorRepository) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Search(ctx context.Context, params repositories.DoctorSearchParams) ([]*entities.Doctor, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Doctor), args.Error(1)
}

func suggestionFor(specialization string) *entities.Suggestion {
	return &entities.Suggestion{
		Specialization: specialization,
		Reason:         "test reason",
		Urgency:        entities.UrgencyMedium,
		RedFlags:       []string{"test flag"},
	}
}

func doctorsNamed(spec string, names ...string) []*entities.Doctor {
	out := make([]*entities.Doctor, 0, len(names))
	for _, name := range names {
		out = append(out, &entities.Doctor{Name: name, Specialization: spec, Region: "Palghar"})
	}
	return out
}

// Tests

func TestTriageSearchService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty symptoms or region", func(t *testing.T) {
		service := services.NewTriageSearchService(new(MockTriageProvider), new(MockDoctorRepository), fallback.NewSeedRegistry(), nil)

		_, err := service.Resolve(ctx, "   ", "Palghar")
		assert.Error(t, err)

		_, err = service.Resolve(ctx, "chest pain", "")
		assert.Error(t, err)
	})

	t.Run("tier 1 returns specialists with specialist status", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, "chest pain").Return(suggestionFor("Cardiologist"), nil)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(p repositories.DoctorSearchParams) bool {
			return p.Specialization == "Cardiologist" && p.Region == "Palghar"
		})).Return(doctorsNamed("Cardiologist", "Dr. A"), nil)

		result, err := service.Resolve(ctx, "chest pain", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.SearchStatusSpecialist, result.Status)
		assert.Len(t, result.Doctors, 1)
		assert.Equal(t, "Cardiologist", result.Suggestion.Specialization)
	})

	t.Run("tier 2 falls back to general physicians", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Cardiologist"), nil)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(p repositories.DoctorSearchParams) bool {
			return p.Specialization == "Cardiologist"
		})).Return([]*entities.Doctor{}, nil)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(p repositories.DoctorSearchParams) bool {
			return p.Specialization == entities.GeneralPhysician
		})).Return(doctorsNamed(entities.GeneralPhysician, "Dr. GP"), nil)

		result, err := service.Resolve(ctx, "chest pain", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.SearchStatusFallback, result.Status)
		assert.Len(t, result.Doctors, 1)
	})

	t.Run("tier 3 returns up to three regional doctors", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Oncologist"), nil)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(p repositories.DoctorSearchParams) bool {
			return p.Specialization != ""
		})).Return([]*entities.Doctor{}, nil)
		repo.On("Search", mock.Anything, mock.MatchedBy(func(p repositories.DoctorSearchParams) bool {
			return p.Specialization == "" && p.Limit == 3
		})).Return(doctorsNamed("Urologist", "Dr. X", "Dr. Y"), nil)

		result, err := service.Resolve(ctx, "lump", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.SearchStatusFallback, result.Status)
		assert.Len(t, result.Doctors, 2)
	})

	t.Run("tier 4 finds seed specialists in region", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Cardiologist"), nil)
		repo.On("Search", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)

		result, err := service.Resolve(ctx, "chest pain", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.SearchStatusSpecialist, result.Status)
		assert.NotEmpty(t, result.Doctors)
		for _, d := range result.Doctors {
			assert.Equal(t, "Cardiologist", d.Specialization)
		}
	})

	t.Run("unknown region resolves to empty", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Cardiologist"), nil)
		repo.On("Search", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)

		result, err := service.Resolve(ctx, "chest pain", "Nowhereville")

		assert.NoError(t, err)
		assert.Equal(t, entities.SearchStatusEmpty, result.Status)
		assert.Empty(t, result.Doctors)
	})

	t.Run("store errors cascade as empty tiers", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Cardiologist"), nil)
		repo.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		result, err := service.Resolve(ctx, "chest pain", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.SearchStatusSpecialist, result.Status)
		assert.NotEmpty(t, result.Doctors)
	})

	t.Run("classification failure yields default suggestion", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(nil, errors.New("model unavailable"))
		repo.On("Search", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)

		result, err := service.Resolve(ctx, "something odd", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.GeneralPhysician, result.Suggestion.Specialization)
		assert.Equal(t, entities.UrgencyMedium, result.Suggestion.Urgency)
	})

	t.Run("out-of-set specialization is coerced", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Witch Doctor"), nil)
		repo.On("Search", mock.Anything, mock.Anything).Return([]*entities.Doctor{}, nil)

		result, err := service.Resolve(ctx, "hex", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, entities.GeneralPhysician, result.Suggestion.Specialization)
	})

	t.Run("results are sorted by descending experience", func(t *testing.T) {
		triage := new(MockTriageProvider)
		repo := new(MockDoctorRepository)
		service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)

		doctors := []*entities.Doctor{
			{Name: "Dr. Junior", Specialization: "Cardiologist", Experience: "5 Years"},
			{Name: "Dr. Senior", Specialization: "Cardiologist", Experience: "12 Years"},
			{Name: "Dr. Unknown", Specialization: "Cardiologist", Experience: "abc"},
		}
		triage.On("Classify", mock.Anything, mock.Anything).Return(suggestionFor("Cardiologist"), nil)
		repo.On("Search", mock.Anything, mock.Anything).Return(doctors, nil)

		result, err := service.Resolve(ctx, "chest pain", "Palghar")

		assert.NoError(t, err)
		assert.Equal(t, "Dr. Senior", result.Doctors[0].Name)
		assert.Equal(t, "Dr. Junior", result.Doctors[1].Name)
		assert.Equal(t, "Dr. Unknown", result.Doctors[2].Name)
	})
}

func TestSession_DiscardsStaleResults(t *testing.T) {
	session := services.NewSession()

	first := session.Begin()
	second := session.Begin()

	stale := &entities.SearchResult{Status: entities.SearchStatusSpecialist}
	assert.False(t, session.Apply(stale, first))

	fresh := &entities.SearchResult{Status: entities.SearchStatusSpecialist}
	assert.True(t, session.Apply(fresh, second))
	assert.Equal(t, second, fresh.Generation)
}
