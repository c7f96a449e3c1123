package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
)

// CacheInvalidationService drops stale cache entries in response to
// registry change events so directory reads converge quickly after an
// admin mutation.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for registry events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelRegistryUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to registry updates: %w", err)
	}

	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	observability.GetLogger().Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.RegistryEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent handles a single registry event. The repository layer
// already invalidates its own entries on local writes; this path covers
// the HTTP response cache and writes performed by other instances.
func (s *CacheInvalidationService) handleEvent(event *entities.RegistryEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger()
	logger.Debug().
		Str("event_id", event.ID).
		Str("doctor_id", event.DoctorID).
		Str("event_type", string(event.EventType)).
		Msg("processing cache invalidation")

	patterns := []string{
		fmt.Sprintf("doctor:%s", event.DoctorID),
		"doctors:list:*",
		"doctors:search:*",
		// HTTP cache keys are hashed, so the whole namespace goes.
		// Only the browse route is cached there and its TTL is short.
		"http:cache:*",
	}

	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			logger.Warn().Err(err).
				Str("pattern", pattern).
				Msg("failed to invalidate cache pattern")
		}
	}
}
