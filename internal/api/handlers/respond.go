package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/aarogyaai/backend/pkg/errors"
)

// Helper functions shared by all handlers

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps a service error onto the wire. Internal and
// external errors are masked; everything else carries its message.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeInternal, apperrors.ErrorTypeExternal:
			respondWithError(w, appErr.HTTPStatus(), "internal server error")
		default:
			respondWithError(w, appErr.HTTPStatus(), appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
