package services

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/aarogyaai/backend/internal/adapters/fallback"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
	apperrors "github.com/aarogyaai/backend/pkg/errors"
)

// specialistTierLimit caps how many doctors a cascade tier returns before
// sorting; the region-wide tier is tighter so the fallback stays scannable.
const (
	specialistTierLimit = 20
	regionTierLimit     = 3
)

// TriageSearchService resolves a free-text symptom description into a
// specialization suggestion and a ranked doctor list. Resolution cascades
// through progressively broader tiers so the patient always gets an
// actionable answer when any doctor exists for the region.
type TriageSearchService struct {
	triage  providers.TriageProvider
	repo    repositories.DoctorRepository
	seeds   *fallback.SeedRegistry
	metrics *observability.Metrics
}

// NewTriageSearchService creates a new triage search service
func NewTriageSearchService(
	triage providers.TriageProvider,
	repo repositories.DoctorRepository,
	seeds *fallback.SeedRegistry,
	metrics *observability.Metrics,
) *TriageSearchService {
	return &TriageSearchService{
		triage:  triage,
		repo:    repo,
		seeds:   seeds,
		metrics: metrics,
	}
}

// Resolve runs the triage classification and the search cascade. It is
// read-only and never returns a hard error once input validation passes:
// store failures reduce a tier to zero results and the cascade moves on.
func (s *TriageSearchService) Resolve(ctx context.Context, symptoms, region string) (*entities.SearchResult, error) {
	symptoms = strings.TrimSpace(symptoms)
	region = strings.TrimSpace(region)

	if symptoms == "" {
		return nil, apperrors.NewValidationError("symptoms must not be empty")
	}
	if region == "" {
		return nil, apperrors.NewValidationError("region must not be empty")
	}

	suggestion, err := s.triage.Classify(ctx, symptoms)
	if err != nil || suggestion == nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Msg("triage classification failed, using default suggestion")
		suggestion = entities.DefaultSuggestion()
	}
	suggestion.Normalize()

	doctors, status, tier := s.cascade(ctx, suggestion.Specialization, region)
	entities.SortByExperience(doctors)

	observability.RecordSearchTier(ctx, s.metrics, tier)
	observability.LoggerFromContext(ctx).Info().
		Str("specialization", suggestion.Specialization).
		Str("region", region).
		Str("tier", tier).
		Int("results", len(doctors)).
		Msg("triage search resolved")

	return &entities.SearchResult{
		Suggestion: suggestion,
		Doctors:    doctors,
		Status:     status,
	}, nil
}

// cascade walks the four tiers in order and returns the first non-empty one
func (s *TriageSearchService) cascade(ctx context.Context, specialization, region string) ([]*entities.Doctor, entities.SearchStatus, string) {
	// Tier 1: specialists in the region
	doctors := s.searchTier(ctx, repositories.DoctorSearchParams{
		Specialization: specialization,
		Region:         region,
		Limit:          specialistTierLimit,
	})
	if len(doctors) > 0 {
		return doctors, entities.SearchStatusSpecialist, "specialist"
	}

	// Tier 2: general physicians in the region
	if !strings.EqualFold(specialization, entities.GeneralPhysician) {
		doctors = s.searchTier(ctx, repositories.DoctorSearchParams{
			Specialization: entities.GeneralPhysician,
			Region:         region,
			Limit:          specialistTierLimit,
		})
		if len(doctors) > 0 {
			return doctors, entities.SearchStatusFallback, "general_physician"
		}
	}

	// Tier 3: any doctor in the region
	doctors = s.searchTier(ctx, repositories.DoctorSearchParams{
		Region: region,
		Limit:  regionTierLimit,
	})
	if len(doctors) > 0 {
		return doctors, entities.SearchStatusFallback, "region"
	}

	// Tier 4: static seed list, still region-scoped
	if seeded := s.seeds.Filter(specialization, region, ""); len(seeded) > 0 {
		return seeded, entities.SearchStatusSpecialist, "seed_specialist"
	}
	if seeded := s.seeds.Filter(entities.GeneralPhysician, region, ""); len(seeded) > 0 {
		return seeded, entities.SearchStatusFallback, "seed_general"
	}

	return []*entities.Doctor{}, entities.SearchStatusEmpty, "empty"
}

func (s *TriageSearchService) searchTier(ctx context.Context, params repositories.DoctorSearchParams) []*entities.Doctor {
	doctors, err := s.repo.Search(ctx, params)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("specialization", params.Specialization).
			Str("region", params.Region).
			Msg("search tier failed, treating as empty")
		return nil
	}
	return doctors
}

// Session tags searches with a monotonically increasing generation so a
// consumer that fires overlapping searches can discard results that were
// superseded before they arrived.
type Session struct {
	generation atomic.Uint64
}

// NewSession creates a new search session
func NewSession() *Session {
	return &Session{}
}

// Begin starts a new search attempt and returns its generation tag.
// Every earlier in-flight search becomes stale.
func (s *Session) Begin() uint64 {
	return s.generation.Add(1)
}

// Apply stamps the result with its generation and reports whether it is
// still the latest. Stale results must be dropped by the caller.
func (s *Session) Apply(result *entities.SearchResult, generation uint64) bool {
	if result == nil {
		return false
	}
	result.Generation = generation
	return s.generation.Load() == generation
}
