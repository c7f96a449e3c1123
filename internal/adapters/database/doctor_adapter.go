package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

var doctorColumns = []interface{}{
	"id", "name", "specialization", "experience", "clinic",
	"location", "region", "phone", "timing", "fees",
	"rating", "image", "created_at", "updated_at",
}

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new doctor
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	record := goqu.Record{
		"id":             doctor.ID,
		"name":           doctor.Name,
		"specialization": doctor.Specialization,
		"experience":     doctor.Experience,
		"clinic":         doctor.Clinic,
		"location":       doctor.Location,
		"region":         doctor.Region,
		"phone":          doctor.Phone,
		"timing":         doctor.Timing,
		"fees":           doctor.Fees,
		"rating":         doctor.Rating,
		"image":          doctor.Image,
		"created_at":     doctor.CreatedAt,
		"updated_at":     doctor.UpdatedAt,
	}

	query, args, err := a.db.Insert("doctors").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}

	return nil
}

// GetByID retrieves a doctor by ID
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From("doctors").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	doctor, err := scanDoctor(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}

	return doctor, nil
}

// Update updates a doctor
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	doctor.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":           doctor.Name,
		"specialization": doctor.Specialization,
		"experience":     doctor.Experience,
		"clinic":         doctor.Clinic,
		"location":       doctor.Location,
		"region":         doctor.Region,
		"phone":          doctor.Phone,
		"timing":         doctor.Timing,
		"fees":           doctor.Fees,
		"rating":         doctor.Rating,
		"image":          doctor.Image,
		"updated_at":     doctor.UpdatedAt,
	}

	query, args, err := a.db.Update("doctors").
		Set(record).
		Where(goqu.Ex{"id": doctor.ID}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update doctor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", doctor.ID))
	}

	return nil
}

// Delete permanently removes a doctor
func (a *DoctorAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("doctors").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete doctor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", id))
	}

	return nil
}

// List retrieves doctors matching the browse filter
func (a *DoctorAdapter) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	ds := a.db.Select(doctorColumns...).From("doctors")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("specialization").ILike(pattern),
		))
	}

	if filter.Region != "" {
		pattern := "%" + filter.Region + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("region").ILike(pattern),
			goqu.I("location").ILike(pattern),
		))
	}

	if filter.Specialization != "" && filter.Specialization != "All" {
		ds = ds.Where(goqu.Ex{"specialization": filter.Specialization})
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

	return a.queryDoctors(ctx, query, args)
}

// Search retrieves doctors for one tier of the triage cascade, or by a
// free-text query matched against name and specialization
func (a *DoctorAdapter) Search(ctx context.Context, params repositories.DoctorSearchParams) ([]*entities.Doctor, error) {
	ds := a.db.Select(doctorColumns...).From("doctors")

	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("specialization").ILike(pattern),
		))
	}

	if params.Specialization != "" {
		ds = ds.Where(goqu.I("specialization").ILike("%" + params.Specialization + "%"))
	}

	if params.Region != "" {
		pattern := "%" + params.Region + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("region").ILike(pattern),
			goqu.I("location").ILike(pattern),
		))
	}

	if params.Limit > 0 {
		ds = ds.Limit(uint(params.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	return a.queryDoctors(ctx, query, args)
}

func (a *DoctorAdapter) queryDoctors(ctx context.Context, query string, args []interface{}) ([]*entities.Doctor, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query doctors", err)
	}
	defer rows.Close()

	doctors := []*entities.Doctor{}
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctors", err)
	}

	return doctors, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	var clinic, rating, image sql.NullString

	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Experience,
		&clinic,
		&doctor.Location,
		&doctor.Region,
		&doctor.Phone,
		&doctor.Timing,
		&doctor.Fees,
		&rating,
		&image,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doctor.Clinic = clinic.String
	doctor.Rating = rating.String
	doctor.Image = image.String

	return doctor, nil
}
