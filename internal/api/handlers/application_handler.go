package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
)

// ApplicationHandler handles doctor-application HTTP requests
type ApplicationHandler struct {
	applications *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
	}
}

// Submit handles POST /api/applications
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var application entities.DoctorApplication
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.applications.Submit(r.Context(), &application); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, application)
}

// List handles GET /api/admin/applications
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ApplicationFilter{
		Status: entities.ApplicationStatus(r.URL.Query().Get("status")),
	}

	applications, err := h.applications.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"applications": applications,
		"count":        len(applications),
	})
}

// Approve handles POST /api/admin/applications/{id}/approve
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("id")
	if applicationID == "" {
		respondWithError(w, http.StatusBadRequest, "application ID is required")
		return
	}

	doctor, err := h.applications.Approve(r.Context(), applicationID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "accepted",
		"doctor": doctor,
	})
}

// Reject handles POST /api/admin/applications/{id}/reject
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("id")
	if applicationID == "" {
		respondWithError(w, http.StatusBadRequest, "application ID is required")
		return
	}

	if err := h.applications.Reject(r.Context(), applicationID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// Delete handles DELETE /api/admin/applications/{id}
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("id")
	if applicationID == "" {
		respondWithError(w, http.StatusBadRequest, "application ID is required")
		return
	}

	if err := h.applications.Delete(r.Context(), applicationID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
