package services

import (
	"context"
	"strings"
	"time"

	"github.com/aarogyaai/backend/internal/adapters/fallback"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
	"github.com/google/uuid"
)

// RegistryService manages the live doctor registry: the merged browse view
// and the admin CRUD operations that keep the search index, cache, and
// event stream in step with the primary store.
type RegistryService struct {
	repo       repositories.DoctorRepository
	searchRepo repositories.DoctorSearchRepository
	seeds      *fallback.SeedRegistry
	eventBus   providers.EventBus
}

// NewRegistryService creates a new registry service. searchRepo and
// eventBus are optional; nil disables indexing and event publishing.
func NewRegistryService(
	repo repositories.DoctorRepository,
	searchRepo repositories.DoctorSearchRepository,
	seeds *fallback.SeedRegistry,
	eventBus providers.EventBus,
) *RegistryService {
	return &RegistryService{
		repo:       repo,
		searchRepo: searchRepo,
		seeds:      seeds,
		eventBus:   eventBus,
	}
}

// Browse returns the reconciled directory view: the live registry merged
// with the seed list. Free-text queries are served from the search index
// when one is configured, with the primary store as fallback. A live-store
// failure reduces to the seed list alone; seed entries are appended only
// when no live entry shares their name (case-insensitive). The merged list
// is sorted by descending experience.
func (s *RegistryService) Browse(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	live := s.liveList(ctx, filter)

	merged := make([]*entities.Doctor, 0, len(live))
	seen := make(map[string]struct{}, len(live))
	for _, d := range live {
		merged = append(merged, d)
		seen[strings.ToLower(strings.TrimSpace(d.Name))] = struct{}{}
	}

	for _, d := range s.seeds.Filter(filter.Query, filter.Region, filter.Specialization) {
		if _, dup := seen[strings.ToLower(strings.TrimSpace(d.Name))]; dup {
			continue
		}
		merged = append(merged, d)
	}

	entities.SortByExperience(merged)
	return merged, nil
}

// liveList resolves the live half of the browse view. Free-text queries go
// through the search index when it is configured and no exact
// specialization filter is requested (the index matches by relevance, not
// by exact column equality). Everything else, and any index failure, goes
// to the primary store.
func (s *RegistryService) liveList(ctx context.Context, filter repositories.DoctorFilter) []*entities.Doctor {
	if s.searchRepo != nil && strings.TrimSpace(filter.Query) != "" &&
		(filter.Specialization == "" || filter.Specialization == "All") {
		hits, err := s.searchRepo.Search(ctx, repositories.DoctorSearchParams{
			Query:  filter.Query,
			Region: filter.Region,
			Limit:  filter.Limit,
		})
		if err == nil {
			return s.hydrate(ctx, hits)
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("query", filter.Query).
			Msg("search index unavailable, falling back to primary store")
	}

	live, err := s.repo.List(ctx, filter)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Msg("live registry unavailable, browsing seed list only")
		return nil
	}
	return live
}

// hydrate swaps index hits for the full registry records. Index documents
// carry only the searchable fields, so the primary store supplies phone,
// timing, and fees; a hit whose record cannot be read is kept as-is.
func (s *RegistryService) hydrate(ctx context.Context, hits []*entities.Doctor) []*entities.Doctor {
	doctors := make([]*entities.Doctor, 0, len(hits))
	for _, hit := range hits {
		if full, err := s.repo.GetByID(ctx, hit.ID); err == nil {
			doctors = append(doctors, full)
			continue
		}
		doctors = append(doctors, hit)
	}
	return doctors
}

// GetByID retrieves a doctor from the live registry
func (s *RegistryService) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a doctor to the live registry and propagates the change
func (s *RegistryService) Create(ctx context.Context, doctor *entities.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if strings.TrimSpace(doctor.Timing) == "" {
		doctor.Timing = entities.DefaultTiming
	}
	if strings.TrimSpace(doctor.Fees) == "" {
		doctor.Fees = entities.DefaultFees
	}
	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	if err := s.repo.Create(ctx, doctor); err != nil {
		return err
	}

	s.index(ctx, doctor)
	s.publish(ctx, entities.RegistryEventTypeDoctorAdded, doctor)

	return nil
}

// Update modifies a doctor in the live registry and propagates the change
func (s *RegistryService) Update(ctx context.Context, doctor *entities.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return err
	}

	s.index(ctx, doctor)
	s.publish(ctx, entities.RegistryEventTypeDoctorUpdated, doctor)

	return nil
}

// Delete removes a doctor from the live registry and propagates the change
func (s *RegistryService) Delete(ctx context.Context, id string) error {
	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("doctor_id", id).
				Msg("failed to remove doctor from search index")
		}
	}
	s.publish(ctx, entities.RegistryEventTypeDoctorRemoved, doctor)

	return nil
}

func (s *RegistryService) index(ctx context.Context, doctor *entities.Doctor) {
	if s.searchRepo == nil {
		return
	}
	// Indexing is eventually consistent; failures never fail the write
	if err := s.searchRepo.Index(ctx, doctor); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("doctor_id", doctor.ID).
			Msg("failed to index doctor")
	}
}

func (s *RegistryService) publish(ctx context.Context, eventType entities.RegistryEventType, doctor *entities.Doctor) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewRegistryEvent(eventType, doctor)
	if err := s.eventBus.Publish(ctx, providers.EventChannelRegistryUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("doctor_id", doctor.ID).
			Msg("failed to publish registry event")
	}

	// Region channels feed the region-scoped SSE streams
	if region := strings.TrimSpace(doctor.Region); region != "" {
		if err := s.eventBus.Publish(ctx, providers.GetRegionChannel(region), event); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("doctor_id", doctor.ID).
				Str("region", region).
				Msg("failed to publish regional registry event")
		}
	}
}

func validateDoctor(doctor *entities.Doctor) error {
	if doctor == nil {
		return apperrors.NewValidationError("doctor is required")
	}
	if strings.TrimSpace(doctor.Name) == "" {
		return apperrors.NewValidationError("doctor name is required")
	}
	if strings.TrimSpace(doctor.Specialization) == "" {
		return apperrors.NewValidationError("doctor specialization is required")
	}
	if strings.TrimSpace(doctor.Region) == "" {
		return apperrors.NewValidationError("doctor region is required")
	}
	return nil
}
