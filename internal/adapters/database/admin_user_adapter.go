package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

// AdminUserAdapter implements the AdminUserRepository interface
type AdminUserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAdminUserAdapter creates a new admin user adapter
func NewAdminUserAdapter(client *postgres.Client) repositories.AdminUserRepository {
	return &AdminUserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByEmail retrieves an admin user by email
func (a *AdminUserAdapter) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	query, args, err := a.db.Select("id", "email", "password_hash", "created_at").
		From("admin_users").
		Where(goqu.Func("LOWER", goqu.I("email")).Eq(strings.ToLower(email))).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	admin := &entities.AdminUser{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin user %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get admin user", err)
	}

	return admin, nil
}

// Create creates a new admin user
func (a *AdminUserAdapter) Create(ctx context.Context, admin *entities.AdminUser) error {
	record := goqu.Record{
		"id":            admin.ID,
		"email":         admin.Email,
		"password_hash": admin.PasswordHash,
		"created_at":    admin.CreatedAt,
	}

	query, args, err := a.db.Insert("admin_users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create admin user", err)
	}

	return nil
}
