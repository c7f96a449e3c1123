package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

var applicationColumns = []interface{}{
	"id", "full_name", "registration_no", "email", "specialization",
	"experience", "region", "phone", "timing", "status", "created_at",
}

// ApplicationAdapter implements the ApplicationRepository interface
type ApplicationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewApplicationAdapter creates a new application adapter
func NewApplicationAdapter(client *postgres.Client) repositories.ApplicationRepository {
	return &ApplicationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new application in pending state
func (a *ApplicationAdapter) Create(ctx context.Context, application *entities.DoctorApplication) error {
	record := goqu.Record{
		"id":              application.ID,
		"full_name":       application.FullName,
		"registration_no": application.RegistrationNo,
		"email":           application.Email,
		"specialization":  application.Specialization,
		"experience":      application.Experience,
		"region":          application.Region,
		"phone":           application.Phone,
		"timing":          application.Timing,
		"status":          application.Status,
		"created_at":      application.CreatedAt,
	}

	query, args, err := a.db.Insert("doctor_applications").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create application", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (a *ApplicationAdapter) GetByID(ctx context.Context, id string) (*entities.DoctorApplication, error) {
	query, args, err := a.db.Select(applicationColumns...).
		From("doctor_applications").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	application, err := scanApplication(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("application with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get application", err)
	}

	return application, nil
}

// List retrieves applications, newest first
func (a *ApplicationAdapter) List(ctx context.Context, filter repositories.ApplicationFilter) ([]*entities.DoctorApplication, error) {
	ds := a.db.Select(applicationColumns...).From("doctor_applications")

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list applications", err)
	}
	defer rows.Close()

	applications := []*entities.DoctorApplication{}
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan application", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating applications", err)
	}

	return applications, nil
}

// UpdateStatus transitions an application's status
func (a *ApplicationAdapter) UpdateStatus(ctx context.Context, id string, status entities.ApplicationStatus) error {
	query, args, err := a.db.Update("doctor_applications").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update application status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("application with id %s not found", id))
	}

	return nil
}

// Delete permanently removes an application regardless of status
func (a *ApplicationAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("doctor_applications").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete application", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("application with id %s not found", id))
	}

	return nil
}

func scanApplication(row rowScanner) (*entities.DoctorApplication, error) {
	application := &entities.DoctorApplication{}
	var timing sql.NullString

	err := row.Scan(
		&application.ID,
		&application.FullName,
		&application.RegistrationNo,
		&application.Email,
		&application.Specialization,
		&application.Experience,
		&application.Region,
		&application.Phone,
		&timing,
		&application.Status,
		&application.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	application.Timing = timing.String

	return application, nil
}
