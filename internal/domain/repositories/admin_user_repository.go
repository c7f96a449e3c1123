package repositories

import (
	"context"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

// AdminUserRepository defines the interface for console administrator lookups
type AdminUserRepository interface {
	// GetByEmail retrieves an admin user by email
	GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error)

	// Create creates a new admin user
	Create(ctx context.Context, admin *entities.AdminUser) error
}
