package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/domain/repositories"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
)

// CacheWarmingService keeps the hot directory reads cached so the first
// patient request after a deploy or an invalidation does not pay the
// database round trip.
type CacheWarmingService struct {
	doctorRepo repositories.DoctorRepository
	cache      providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	doctorRepo repositories.DoctorRepository,
	cache providers.CacheProvider,
) *CacheWarmingService {
	return &CacheWarmingService{
		doctorRepo: doctorRepo,
		cache:      cache,
	}
}

// WarmCache warms the cache with frequently accessed data
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	logger := observability.LoggerFromContext(ctx)
	logger.Info().Msg("starting cache warming")

	if err := s.warmDoctorEntries(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to warm doctor entries")
	}
	if err := s.warmBrowseList(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to warm browse list")
	}

	logger.Info().Msg("cache warming completed")
	return nil
}

// warmDoctorEntries caches each registered doctor under its detail key
func (s *CacheWarmingService) warmDoctorEntries(ctx context.Context) error {
	doctors, err := s.doctorRepo.List(ctx, repositories.DoctorFilter{Limit: 50})
	if err != nil {
		return fmt.Errorf("failed to fetch doctors: %w", err)
	}

	warmed := 0
	for _, doctor := range doctors {
		data, err := json.Marshal(doctor)
		if err != nil {
			continue
		}
		key := fmt.Sprintf("doctor:%s", doctor.ID)
		if err := s.cache.Set(ctx, key, data, 300); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("key", key).
				Msg("failed to cache doctor entry")
			continue
		}
		warmed++
	}

	observability.LoggerFromContext(ctx).Info().
		Int("count", warmed).
		Msg("warmed doctor entries")
	return nil
}

// warmBrowseList populates the list cache for the unfiltered first page.
// Listing through the cached adapter writes the entry as a side effect.
func (s *CacheWarmingService) warmBrowseList(ctx context.Context) error {
	_, err := s.doctorRepo.List(ctx, repositories.DoctorFilter{Limit: 50})
	if err != nil {
		return fmt.Errorf("failed to warm browse list: %w", err)
	}
	return nil
}

// StartPeriodicWarming runs WarmCache on a fixed interval until the
// context is cancelled. The initial warm happens synchronously.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	logger := observability.GetLogger()

	if err := s.WarmCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial cache warming failed")
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info().Msg("stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(context.Background()); err != nil {
					logger.Warn().Err(err).Msg("periodic cache warming failed")
				}
			}
		}
	}()
	logger.Info().Dur("interval", interval).Msg("started periodic cache warming")
}

// InvalidateCache drops every registry-derived cache entry, useful after
// a bulk import or reindex
func (s *CacheWarmingService) InvalidateCache(ctx context.Context) error {
	patterns := []string{
		"doctor:*",
		"doctors:*",
	}

	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("pattern", pattern).
				Msg("failed to invalidate cache pattern")
		}
	}

	return nil
}
