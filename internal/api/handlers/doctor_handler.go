package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
)

const defaultBrowseLimit = 50

// DoctorHandler handles doctor directory HTTP requests
type DoctorHandler struct {
	registry *services.RegistryService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(registry *services.RegistryService) *DoctorHandler {
	return &DoctorHandler{
		registry: registry,
	}
}

// ListDoctors handles GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repositories.DoctorFilter{
		Query:          query.Get("q"),
		Region:         query.Get("region"),
		Specialization: query.Get("specialization"),
		Limit:          defaultBrowseLimit,
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	doctors, err := h.registry.Browse(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	doctor, err := h.registry.GetByID(r.Context(), doctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// CreateDoctor handles POST /api/admin/doctors
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var doctor entities.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.registry.Create(r.Context(), &doctor); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, doctor)
}

// UpdateDoctor handles PATCH /api/admin/doctors/{id}
func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	existing, err := h.registry.GetByID(r.Context(), doctorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// Decode over the existing record so omitted fields keep their values
	if err := json.NewDecoder(r.Body).Decode(existing); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	existing.ID = doctorID

	if err := h.registry.Update(r.Context(), existing); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, existing)
}

// DeleteDoctor handles DELETE /api/admin/doctors/{id}
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	if doctorID == "" {
		respondWithError(w, http.StatusBadRequest, "doctor ID is required")
		return
	}

	if err := h.registry.Delete(r.Context(), doctorID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
