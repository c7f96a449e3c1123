package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aarogyaai/backend/internal/application/services"
)

// TriageHandler handles symptom triage search requests
type TriageHandler struct {
	searchService *services.TriageSearchService
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(searchService *services.TriageSearchService) *TriageHandler {
	return &TriageHandler{
		searchService: searchService,
	}
}

type triageSearchRequest struct {
	Symptoms string `json:"symptoms"`
	Region   string `json:"region"`
}

// Search handles POST /api/triage/search
func (h *TriageHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req triageSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.searchService.Resolve(r.Context(), req.Symptoms, req.Region)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
