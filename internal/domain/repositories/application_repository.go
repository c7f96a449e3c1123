package repositories

import (
	"context"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

// ApplicationRepository defines the interface for doctor-application
// intake records
type ApplicationRepository interface {
	// Create creates a new application in pending state
	Create(ctx context.Context, application *entities.DoctorApplication) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id string) (*entities.DoctorApplication, error)

	// List retrieves applications, newest first
	List(ctx context.Context, filter ApplicationFilter) ([]*entities.DoctorApplication, error)

	// UpdateStatus transitions an application's status
	UpdateStatus(ctx context.Context, id string, status entities.ApplicationStatus) error

	// Delete permanently removes an application regardless of status
	Delete(ctx context.Context, id string) error
}

// ApplicationFilter defines filters for listing applications
type ApplicationFilter struct {
	Status entities.ApplicationStatus
	Limit  int
	Offset int
}
