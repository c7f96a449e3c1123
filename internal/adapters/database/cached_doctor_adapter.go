package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
)

// CachedDoctorAdapter wraps a DoctorRepository with caching
type CachedDoctorAdapter struct {
	adapter repositories.DoctorRepository
	cache   providers.CacheProvider
}

// NewCachedDoctorAdapter creates a new cached doctor adapter
func NewCachedDoctorAdapter(adapter repositories.DoctorRepository, cache providers.CacheProvider) repositories.DoctorRepository {
	return &CachedDoctorAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	doctorByIDTTL     = 300 // 5 minutes for single doctor
	doctorsListTTL    = 180 // 3 minutes for browse lists
	cascadeResultsTTL = 120 // 2 minutes for cascade tiers
)

// Cache key generators
func doctorCacheKey(id string) string {
	return fmt.Sprintf("doctor:%s", id)
}

func doctorsListCacheKey(filter repositories.DoctorFilter) string {
	return fmt.Sprintf("doctors:list:%s:%s:%s:%d:%d",
		filter.Query, filter.Region, filter.Specialization, filter.Limit, filter.Offset)
}

func doctorsSearchCacheKey(params repositories.DoctorSearchParams) string {
	return fmt.Sprintf("doctors:search:%s:%s:%s:%d",
		params.Query, params.Specialization, params.Region, params.Limit)
}

// GetByID retrieves a doctor by ID with caching
func (a *CachedDoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	cacheKey := doctorCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctor entities.Doctor
		if err := json.Unmarshal(cached, &doctor); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("doctor_id", id).
				Msg("failed to unmarshal cached doctor")
		} else {
			return &doctor, nil
		}
	}

	doctor, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctor); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorByIDTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Str("doctor_id", id).
					Msg("failed to cache doctor")
			}
		}
	}()

	return doctor, nil
}

// List retrieves doctors matching the browse filter with caching
func (a *CachedDoctorAdapter) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	cacheKey := doctorsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctors []*entities.Doctor
		if err := json.Unmarshal(cached, &doctors); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Msg("failed to unmarshal cached doctors list")
		} else {
			return doctors, nil
		}
	}

	doctors, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctors); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorsListTTL); err != nil {
				observability.GetLogger().Warn().Err(err).
					Msg("failed to cache doctors list")
			}
		}
	}()

	return doctors, nil
}

// Search retrieves doctors for one cascade tier with caching
func (a *CachedDoctorAdapter) Search(ctx context.Context, params repositories.DoctorSearchParams) ([]*entities.Doctor, error) {
	cacheKey := doctorsSearchCacheKey(params)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctors []*entities.Doctor
		if err := json.Unmarshal(cached, &doctors); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Msg("failed to unmarshal cached search results")
		} else {
			return doctors, nil
		}
	}

	doctors, err := a.adapter.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctors); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, cascadeResultsTTL); err != nil {
				observability.GetLogger().Warn().Err(err).
					Msg("failed to cache search results")
			}
		}
	}()

	return doctors, nil
}

// Create creates a doctor and invalidates list caches
func (a *CachedDoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	if err := a.adapter.Create(ctx, doctor); err != nil {
		return err
	}

	go a.invalidateLists()

	return nil
}

// Update updates a doctor and invalidates its caches
func (a *CachedDoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	if err := a.adapter.Update(ctx, doctor); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, doctorCacheKey(doctor.ID)); err != nil {
			observability.GetLogger().Warn().Err(err).Str("doctor_id", doctor.ID).
				Msg("failed to invalidate doctor cache")
		}
		a.invalidateLists()
	}()

	return nil
}

// Delete deletes a doctor and invalidates its caches
func (a *CachedDoctorAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, doctorCacheKey(id)); err != nil {
			observability.GetLogger().Warn().Err(err).Str("doctor_id", id).
				Msg("failed to invalidate doctor cache")
		}
		a.invalidateLists()
	}()

	return nil
}

func (a *CachedDoctorAdapter) invalidateLists() {
	bgCtx := context.Background()
	if err := a.cache.DeletePattern(bgCtx, "doctors:list:*"); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to invalidate doctors list cache")
	}
	if err := a.cache.DeletePattern(bgCtx, "doctors:search:*"); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to invalidate doctors search cache")
	}
}
