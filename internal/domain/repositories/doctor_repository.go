package repositories

import (
	"context"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

// DoctorRepository defines the interface for live-registry data operations
type DoctorRepository interface {
	// Create creates a new doctor
	Create(ctx context.Context, doctor *entities.Doctor) error

	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// Update updates a doctor
	Update(ctx context.Context, doctor *entities.Doctor) error

	// Delete permanently removes a doctor
	Delete(ctx context.Context, id string) error

	// List retrieves doctors matching the browse filter
	List(ctx context.Context, filter DoctorFilter) ([]*entities.Doctor, error)

	// Search retrieves doctors for one tier of the triage cascade
	Search(ctx context.Context, params DoctorSearchParams) ([]*entities.Doctor, error)
}

// DoctorSearchRepository defines the interface for doctor search-index
// operations (e.g. Typesense)
type DoctorSearchRepository interface {
	// Search performs full-text search over the index
	Search(ctx context.Context, params DoctorSearchParams) ([]*entities.Doctor, error)

	// Index upserts a doctor into the index
	Index(ctx context.Context, doctor *entities.Doctor) error

	// Delete removes a doctor from the index
	Delete(ctx context.Context, id string) error
}

// DoctorFilter defines the browse-view filters. Empty fields and the "All"
// specialization match everything.
type DoctorFilter struct {
	// Query matches name or specialization as a case-insensitive substring
	Query string

	// Region matches region or location as a case-insensitive substring
	Region string

	// Specialization is an exact match unless empty or "All"
	Specialization string

	Limit  int
	Offset int
}

// DoctorSearchParams defines parameters for one cascade tier or a
// free-text index lookup. All predicates are case-insensitive substring
// matches; Region is applied to the region and location columns as a
// disjunction.
type DoctorSearchParams struct {
	// Query is a free-text term matched across name, specialization,
	// region, and location. Cascade tiers leave it empty.
	Query string

	Specialization string
	Region         string
	Limit          int
}
