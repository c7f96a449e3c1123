package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aarogyaai/backend/internal/adapters/fallback"
	"github.com/aarogyaai/backend/internal/api/handlers"
	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeApplicationRepository struct {
	applications map[string]*entities.DoctorApplication
	createErr    error
}

func newFakeApplicationRepository() *fakeApplicationRepository {
	return &fakeApplicationRepository{applications: make(map[string]*entities.DoctorApplication)}
}

func (f *fakeApplicationRepository) Create(ctx context.Context, application *entities.DoctorApplication) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationRepository) GetByID(ctx context.Context, id string) (*entities.DoctorApplication, error) {
	if a, ok := f.applications[id]; ok {
		return a, nil
	}
	return nil, apperrors.NewNotFoundError("application not found")
}

func (f *fakeApplicationRepository) List(ctx context.Context, filter repositories.ApplicationFilter) ([]*entities.DoctorApplication, error) {
	out := []*entities.DoctorApplication{}
	for _, a := range f.applications {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApplicationRepository) UpdateStatus(ctx context.Context, id string, status entities.ApplicationStatus) error {
	a, ok := f.applications[id]
	if !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	a.Status = status
	return nil
}

func (f *fakeApplicationRepository) Delete(ctx context.Context, id string) error {
	if _, ok := f.applications[id]; !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	delete(f.applications, id)
	return nil
}

func newApplicationHandler(appRepo *fakeApplicationRepository, doctorRepo *fakeDoctorRepository) *handlers.ApplicationHandler {
	registry := services.NewRegistryService(doctorRepo, nil, fallback.NewSeedRegistry(), nil)
	return handlers.NewApplicationHandler(services.NewApplicationService(appRepo, registry))
}

func TestApplicationHandler_Submit(t *testing.T) {
	t.Run("accepts a complete application", func(t *testing.T) {
		appRepo := newFakeApplicationRepository()
		handler := newApplicationHandler(appRepo, newFakeDoctorRepository())

		payload := map[string]string{
			"full_name":       "Dr. Asha Verma",
			"registration_no": "MH-12345",
			"email":           "asha@example.com",
			"specialization":  "Dermatologist",
			"experience":      "9",
			"region":          "Palghar",
			"phone":           "+91 98200 22001",
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, appRepo.applications, 1)
		for _, a := range appRepo.applications {
			assert.Equal(t, entities.ApplicationStatusPending, a.Status)
			assert.Equal(t, "9 Years", a.Experience)
		}
	})

	t.Run("rejects incomplete application", func(t *testing.T) {
		handler := newApplicationHandler(newFakeApplicationRepository(), newFakeDoctorRepository())

		body, _ := json.Marshal(map[string]string{"full_name": "Dr. X"})
		req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestApplicationHandler_Approve(t *testing.T) {
	t.Run("approval creates a doctor", func(t *testing.T) {
		appRepo := newFakeApplicationRepository()
		doctorRepo := newFakeDoctorRepository()
		handler := newApplicationHandler(appRepo, doctorRepo)

		appRepo.applications["app-1"] = &entities.DoctorApplication{
			ID:             "app-1",
			FullName:       "Dr. Asha Verma",
			RegistrationNo: "MH-12345",
			Email:          "asha@example.com",
			Specialization: "Dermatologist",
			Experience:     "9 Years",
			Region:         "Palghar",
			Phone:          "+91 98200 22001",
			Status:         entities.ApplicationStatusPending,
		}

		req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/app-1/approve", nil)
		req.SetPathValue("id", "app-1")
		rec := httptest.NewRecorder()

		handler.Approve(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, doctorRepo.doctors, 1)
		assert.Equal(t, entities.ApplicationStatusAccepted, appRepo.applications["app-1"].Status)
	})

	t.Run("unknown application yields 404", func(t *testing.T) {
		handler := newApplicationHandler(newFakeApplicationRepository(), newFakeDoctorRepository())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/ghost/approve", nil)
		req.SetPathValue("id", "ghost")
		rec := httptest.NewRecorder()

		handler.Approve(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestApplicationHandler_Reject(t *testing.T) {
	appRepo := newFakeApplicationRepository()
	handler := newApplicationHandler(appRepo, newFakeDoctorRepository())

	appRepo.applications["app-1"] = &entities.DoctorApplication{
		ID:     "app-1",
		Status: entities.ApplicationStatusPending,
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/app-1/reject", nil)
	req.SetPathValue("id", "app-1")
	rec := httptest.NewRecorder()

	handler.Reject(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.ApplicationStatusRejected, appRepo.applications["app-1"].Status)
}
