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
	"github.com/stretchr/testify/assert"
)

// In-memory fakes

type fakeTriageProvider struct {
	suggestion *entities.Suggestion
	err        error
}

func (f *fakeTriageProvider) Classify(ctx context.Context, symptoms string) (*entities.Suggestion, error) {
	return f.suggestion, f.err
}

type fakeDoctorRepository struct {
	doctors   map[string]*entities.Doctor
	searchHit []*entities.Doctor
	listHit   []*entities.Doctor
	err       error
}

func newFakeDoctorRepository() *fakeDoctorRepository {
	return &fakeDoctorRepository{doctors: make(map[string]*entities.Doctor)}
}

func (f *fakeDoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	if f.err != nil {
		return f.err
	}
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepository) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, apperrNotFound(id)
}

func (f *fakeDoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return f.err
}

func (f *fakeDoctorRepository) Delete(ctx context.Context, id string) error {
	delete(f.doctors, id)
	return f.err
}

func (f *fakeDoctorRepository) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	return f.listHit, f.err
}

func (f *fakeDoctorRepository) Search(ctx context.Context, params repositories.DoctorSearchParams) ([]*entities.Doctor, error) {
	return f.searchHit, f.err
}

func newTriageHandler(triage *fakeTriageProvider, repo *fakeDoctorRepository) *handlers.TriageHandler {
	service := services.NewTriageSearchService(triage, repo, fallback.NewSeedRegistry(), nil)
	return handlers.NewTriageHandler(service)
}

// Tests

func TestTriageHandler_Search(t *testing.T) {
	t.Run("returns suggestion and doctors", func(t *testing.T) {
		triage := &fakeTriageProvider{suggestion: &entities.Suggestion{
			Specialization: "Cardiologist",
			Reason:         "chest pain points to cardiology",
			Urgency:        entities.UrgencyHigh,
			RedFlags:       []string{"pain spreading to arm"},
		}}
		repo := newFakeDoctorRepository()
		repo.searchHit = []*entities.Doctor{
			{Name: "Dr. A", Specialization: "Cardiologist", Experience: "10 Years"},
		}

		body, _ := json.Marshal(map[string]string{"symptoms": "chest pain", "region": "Palghar"})
		req := httptest.NewRequest(http.MethodPost, "/api/triage/search", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		newTriageHandler(triage, repo).Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result entities.SearchResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, entities.SearchStatusSpecialist, result.Status)
		assert.Equal(t, "Cardiologist", result.Suggestion.Specialization)
		assert.Len(t, result.Doctors, 1)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/triage/search", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		newTriageHandler(&fakeTriageProvider{}, newFakeDoctorRepository()).Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects blank symptoms", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"symptoms": "  ", "region": "Palghar"})
		req := httptest.NewRequest(http.MethodPost, "/api/triage/search", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		newTriageHandler(&fakeTriageProvider{}, newFakeDoctorRepository()).Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
