package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aarogyaai/backend/internal/application/services"
)

// AuthHandler handles admin authentication requests
type AuthHandler struct {
	auth *services.AdminAuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AdminAuthService) *AuthHandler {
	return &AuthHandler{
		auth: auth,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}
