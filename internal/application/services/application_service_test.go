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

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *entities.DoctorApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id string) (*entities.DoctorApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DoctorApplication), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, filter repositories.ApplicationFilter) ([]*entities.DoctorApplication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DoctorApplication), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, status entities.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func pendingApplication() *entities.DoctorApplication {
	return &entities.DoctorApplication{
		ID:             "app-1",
		FullName:       "Dr. Asha Verma",
		RegistrationNo: "MH-12345",
		Email:          "asha@example.com",
		Specialization: "Dermatologist",
		Experience:     "9 Years",
		Region:         "Palghar",
		Phone:          "+91 98200 22001",
		Timing:         "",
		Status:         entities.ApplicationStatusPending,
	}
}

func newApplicationService(repo *MockApplicationRepository, doctorRepo *MockDoctorRepository) *services.ApplicationService {
	registry := services.NewRegistryService(doctorRepo, nil, fallback.NewSeedRegistry(), nil)
	return services.NewApplicationService(repo, registry)
}

// Tests

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("records pending application with normalized experience", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		service := newApplicationService(repo, new(MockDoctorRepository))

		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.DoctorApplication) bool {
			return a.Status == entities.ApplicationStatusPending &&
				a.Experience == "9 Years" &&
				a.ID != ""
		})).Return(nil)

		application := pendingApplication()
		application.ID = ""
		application.Experience = "9"
		err := service.Submit(ctx, application)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("keeps already descriptive experience text", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		service := newApplicationService(repo, new(MockDoctorRepository))

		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.DoctorApplication) bool {
			return a.Experience == "9 Years"
		})).Return(nil)

		application := pendingApplication()
		err := service.Submit(ctx, application)

		assert.NoError(t, err)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		service := newApplicationService(new(MockApplicationRepository), new(MockDoctorRepository))

		application := pendingApplication()
		application.Email = "  "
		err := service.Submit(ctx, application)

		assert.Error(t, err)
	})
}

func TestApplicationService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("creates doctor from application fields then marks accepted", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		doctorRepo := new(MockDoctorRepository)
		service := newApplicationService(repo, doctorRepo)

		repo.On("GetByID", mock.Anything, "app-1").Return(pendingApplication(), nil)
		doctorRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Doctor) bool {
			return d.Name == "Dr. Asha Verma" &&
				d.Region == "Palghar" &&
				d.Location == "Palghar" &&
				d.Timing == entities.DefaultTiming &&
				d.Fees == entities.DefaultFees
		})).Return(nil)
		repo.On("UpdateStatus", mock.Anything, "app-1", entities.ApplicationStatusAccepted).Return(nil)

		doctor, err := service.Approve(ctx, "app-1")

		assert.NoError(t, err)
		assert.NotNil(t, doctor)
		assert.NotEmpty(t, doctor.ID)
		repo.AssertExpectations(t)
		doctorRepo.AssertExpectations(t)
	})

	t.Run("doctor insert failure leaves application pending", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		doctorRepo := new(MockDoctorRepository)
		service := newApplicationService(repo, doctorRepo)

		repo.On("GetByID", mock.Anything, "app-1").Return(pendingApplication(), nil)
		doctorRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		doctor, err := service.Approve(ctx, "app-1")

		assert.Error(t, err)
		assert.Nil(t, doctor)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status update failure after insert is tolerated", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		doctorRepo := new(MockDoctorRepository)
		service := newApplicationService(repo, doctorRepo)

		repo.On("GetByID", mock.Anything, "app-1").Return(pendingApplication(), nil)
		doctorRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		repo.On("UpdateStatus", mock.Anything, "app-1", entities.ApplicationStatusAccepted).Return(errors.New("db down"))

		doctor, err := service.Approve(ctx, "app-1")

		assert.NoError(t, err)
		assert.NotNil(t, doctor)
	})

	t.Run("non-pending application cannot be approved", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		service := newApplicationService(repo, new(MockDoctorRepository))

		rejected := pendingApplication()
		rejected.Status = entities.ApplicationStatusRejected
		repo.On("GetByID", mock.Anything, "app-1").Return(rejected, nil)

		doctor, err := service.Approve(ctx, "app-1")

		assert.Error(t, err)
		assert.Nil(t, doctor)
	})
}

func TestApplicationService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("marks pending application rejected", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		service := newApplicationService(repo, new(MockDoctorRepository))

		repo.On("GetByID", mock.Anything, "app-1").Return(pendingApplication(), nil)
		repo.On("UpdateStatus", mock.Anything, "app-1", entities.ApplicationStatusRejected).Return(nil)

		err := service.Reject(ctx, "app-1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("already decided application cannot be rejected", func(t *testing.T) {
		repo := new(MockApplicationRepository)
		service := newApplicationService(repo, new(MockDoctorRepository))

		accepted := pendingApplication()
		accepted.Status = entities.ApplicationStatusAccepted
		repo.On("GetByID", mock.Anything, "app-1").Return(accepted, nil)

		err := service.Reject(ctx, "app-1")

		assert.Error(t, err)
	})
}

func TestApplicationService_Delete(t *testing.T) {
	repo := new(MockApplicationRepository)
	service := newApplicationService(repo, new(MockDoctorRepository))

	repo.On("Delete", mock.Anything, "app-1").Return(nil)

	err := service.Delete(context.Background(), "app-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
