package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/google/uuid"
)

// ApplicationService handles the doctor-application lifecycle: public
// intake and the admin decisions that promote applicants into the live
// registry.
type ApplicationService struct {
	repo     repositories.ApplicationRepository
	registry *RegistryService
}

// NewApplicationService creates a new application service
func NewApplicationService(repo repositories.ApplicationRepository, registry *RegistryService) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		registry: registry,
	}
}

// Submit records a new application in pending state
func (s *ApplicationService) Submit(ctx context.Context, application *entities.DoctorApplication) error {
	if err := validateApplication(application); err != nil {
		return err
	}

	application.ID = uuid.New().String()
	application.Experience = normalizeExperience(application.Experience)
	application.Status = entities.ApplicationStatusPending
	application.CreatedAt = time.Now()

	return s.repo.Create(ctx, application)
}

// GetByID retrieves an application
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*entities.DoctorApplication, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves applications, newest first
func (s *ApplicationService) List(ctx context.Context, filter repositories.ApplicationFilter) ([]*entities.DoctorApplication, error) {
	return s.repo.List(ctx, filter)
}

// Approve promotes a pending application into the live registry. The
// doctor insert happens first: if it fails the application stays pending
// and the error surfaces. A status-update failure after a successful
// insert is logged but not rolled back, so the registry entry survives.
func (s *ApplicationService) Approve(ctx context.Context, id string) (*entities.Doctor, error) {
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if application.Status != entities.ApplicationStatusPending {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("application %s is already %s", id, application.Status))
	}

	doctor := application.ToDoctor()
	if err := s.registry.Create(ctx, doctor); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, entities.ApplicationStatusAccepted); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("application_id", id).
			Str("doctor_id", doctor.ID).
			Msg("doctor created but application status update failed")
	}

	return doctor, nil
}

// Reject marks a pending application as rejected
func (s *ApplicationService) Reject(ctx context.Context, id string) error {
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if application.Status != entities.ApplicationStatusPending {
		return apperrors.NewConflictError(
			fmt.Sprintf("application %s is already %s", id, application.Status))
	}

	return s.repo.UpdateStatus(ctx, id, entities.ApplicationStatusRejected)
}

// Delete removes an application regardless of its state
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateApplication(application *entities.DoctorApplication) error {
	if application == nil {
		return apperrors.NewValidationError("application is required")
	}

	required := map[string]string{
		"full_name":       application.FullName,
		"registration_no": application.RegistrationNo,
		"email":           application.Email,
		"specialization":  application.Specialization,
		"experience":      application.Experience,
		"region":          application.Region,
		"phone":           application.Phone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s is required", field))
		}
	}

	return nil
}

// normalizeExperience rewrites bare year counts like "12" as "12 Years"
// so registry sorting and display stay uniform
func normalizeExperience(experience string) string {
	experience = strings.TrimSpace(experience)
	for _, r := range experience {
		if !unicode.IsDigit(r) {
			return experience
		}
	}
	if experience == "" {
		return experience
	}
	return experience + " Years"
}
