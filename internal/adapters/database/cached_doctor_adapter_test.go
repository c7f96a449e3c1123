package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aarogyaai/backend/internal/adapters/database"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
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

// Tests

func TestCachedDoctorAdapter_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the source", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		cache := new(MockCacheProvider)
		adapter := database.NewCachedDoctorAdapter(repo, cache)

		doctor := &entities.Doctor{ID: "doc-1", Name: "Dr. Cached", Specialization: "Cardiologist", Region: "Palghar"}
		data, err := json.Marshal(doctor)
		assert.NoError(t, err)
		cache.On("Get", mock.Anything, "doctor:doc-1").Return(data, nil)

		got, err := adapter.GetByID(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "Dr. Cached", got.Name)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("corrupt cache entry falls through to the source", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		cache := new(MockCacheProvider)
		adapter := database.NewCachedDoctorAdapter(repo, cache)

		doctor := &entities.Doctor{ID: "doc-1", Name: "Dr. Fresh", Specialization: "Cardiologist", Region: "Palghar"}
		cache.On("Get", mock.Anything, "doctor:doc-1").Return([]byte("{not json"), nil)
		cache.On("Set", mock.Anything, "doctor:doc-1", mock.Anything, mock.Anything).Return(nil).Maybe()
		repo.On("GetByID", mock.Anything, "doc-1").Return(doctor, nil)

		got, err := adapter.GetByID(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "Dr. Fresh", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("cache miss reads the source", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		cache := new(MockCacheProvider)
		adapter := database.NewCachedDoctorAdapter(repo, cache)

		doctor := &entities.Doctor{ID: "doc-1", Name: "Dr. Fresh", Specialization: "Cardiologist", Region: "Palghar"}
		cache.On("Get", mock.Anything, "doctor:doc-1").Return(nil, errors.New("cache miss"))
		cache.On("Set", mock.Anything, "doctor:doc-1", mock.Anything, mock.Anything).Return(nil).Maybe()
		repo.On("GetByID", mock.Anything, "doc-1").Return(doctor, nil)

		got, err := adapter.GetByID(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "Dr. Fresh", got.Name)
	})
}

func TestCachedDoctorAdapter_List(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt cache entry falls through to the source", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		cache := new(MockCacheProvider)
		adapter := database.NewCachedDoctorAdapter(repo, cache)

		live := []*entities.Doctor{{ID: "doc-1", Name: "Dr. Fresh", Specialization: "Cardiologist", Region: "Palghar"}}
		cache.On("Get", mock.Anything, mock.Anything).Return([]byte("[broken"), nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		repo.On("List", mock.Anything, mock.Anything).Return(live, nil)

		got, err := adapter.List(ctx, repositories.DoctorFilter{Region: "Palghar"})

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})
}

func TestCachedDoctorAdapter_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("cache key covers the free-text query", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		cache := new(MockCacheProvider)
		adapter := database.NewCachedDoctorAdapter(repo, cache)

		live := []*entities.Doctor{{ID: "doc-1", Name: "Dr. Qureshi", Specialization: "Cardiologist", Region: "Palghar"}}
		cache.On("Get", mock.Anything, "doctors:search:Qureshi::Palghar:10").Return(nil, errors.New("cache miss"))
		cache.On("Set", mock.Anything, "doctors:search:Qureshi::Palghar:10", mock.Anything, mock.Anything).Return(nil).Maybe()
		repo.On("Search", mock.Anything, mock.Anything).Return(live, nil)

		got, err := adapter.Search(ctx, repositories.DoctorSearchParams{Query: "Qureshi", Region: "Palghar", Limit: 10})

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		cache.AssertCalled(t, "Get", mock.Anything, "doctors:search:Qureshi::Palghar:10")
	})

	t.Run("corrupt cache entry falls through to the source", func(t *testing.T) {
		repo := new(MockDoctorRepository)
		cache := new(MockCacheProvider)
		adapter := database.NewCachedDoctorAdapter(repo, cache)

		live := []*entities.Doctor{{ID: "doc-1", Name: "Dr. Fresh", Specialization: "Cardiologist", Region: "Palghar"}}
		cache.On("Get", mock.Anything, mock.Anything).Return([]byte("[broken"), nil)
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		repo.On("Search", mock.Anything, mock.Anything).Return(live, nil)

		got, err := adapter.Search(ctx, repositories.DoctorSearchParams{Specialization: "Cardiologist", Region: "Palghar", Limit: 5})

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})
}
