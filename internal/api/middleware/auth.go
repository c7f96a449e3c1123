package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aarogyaai/backend/internal/application/services"
)

type contextKey string

// AdminClaimsKey is the context key the auth middleware stores verified
// claims under
const AdminClaimsKey contextKey = "admin_claims"

// AdminAuthMiddleware guards admin routes: requests must carry a valid
// Bearer token issued by the admin auth service
func AdminAuthMiddleware(auth *services.AdminAuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := auth.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaimsFromContext returns the verified claims set by the auth
// middleware, if any
func AdminClaimsFromContext(ctx context.Context) (*services.AdminClaims, bool) {
	claims, ok := ctx.Value(AdminClaimsKey).(*services.AdminClaims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
