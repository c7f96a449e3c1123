package services

import (
	"context"
	"time"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService authenticates console administrators and issues the
// short-lived tokens the admin routes require. Credentials are verified
// against bcrypt hashes; the same error is returned for an unknown email
// and a wrong password so the endpoint does not leak which admins exist.
type AdminAuthService struct {
	repo     repositories.AdminUserRepository
	secret   []byte
	tokenTTL time.Duration
}

// AdminClaims are the JWT claims carried by an admin session token
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(repo repositories.AdminUserRepository, jwtSecret string, tokenTTL time.Duration) *AdminAuthService {
	return &AdminAuthService{
		repo:     repo,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

// Login verifies the credentials and returns a signed session token
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorizedError("invalid email or password")
	}

	return s.issueToken(admin)
}

// VerifyToken parses and validates a session token, returning its claims
func (s *AdminAuthService) VerifyToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("invalid token claims")
	}

	return claims, nil
}

func (s *AdminAuthService) issueToken(admin *entities.AdminUser) (string, error) {
	now := time.Now()
	claims := &AdminClaims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}

	return signed, nil
}

// HashPassword produces a bcrypt hash for storage, used by seeding and
// admin provisioning
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}
