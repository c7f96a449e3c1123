package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aarogyaai/backend/internal/api/middleware"
	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeAdminRepo struct {
	admin *entities.AdminUser
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	if f.admin != nil && f.admin.Email == email {
		return f.admin, nil
	}
	return nil, apperrors.NewNotFoundError("admin not found")
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *entities.AdminUser) error {
	f.admin = admin
	return nil
}

func TestAdminAuthMiddleware(t *testing.T) {
	hash, err := services.HashPassword("pw")
	assert.NoError(t, err)

	repo := &fakeAdminRepo{admin: &entities.AdminUser{
		ID:           "admin-1",
		Email:        "admin@example.com",
		PasswordHash: hash,
	}}
	auth := services.NewAdminAuthService(repo, "test-secret", time.Hour)

	var gotClaims *services.AdminClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = middleware.AdminClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	guarded := middleware.AdminAuthMiddleware(auth)(next)

	t.Run("valid token passes with claims in context", func(t *testing.T) {
		token, err := auth.Login(context.Background(), "admin@example.com", "pw")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		if assert.NotNil(t, gotClaims) {
			assert.Equal(t, "admin-1", gotClaims.Subject)
		}
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil)
		rec := httptest.NewRecorder()

		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()

		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
