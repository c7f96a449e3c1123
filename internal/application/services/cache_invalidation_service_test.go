package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aarogyaai/backend/internal/application/services"
	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func TestCacheInvalidationService_InvalidatesOnRegistryEvent(t *testing.T) {
	cache := new(MockCacheProvider)
	eventBus := new(MockEventBus)

	eventChan := make(chan *entities.RegistryEvent, 1)
	eventBus.On("Subscribe", mock.Anything, "registry:updates").
		Return((<-chan *entities.RegistryEvent)(eventChan), nil)

	invalidated := make(chan string, 8)
	cache.On("DeletePattern", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			invalidated <- args.String(1)
		}).
		Return(nil)

	service := services.NewCacheInvalidationService(cache, eventBus)
	assert.NoError(t, service.Start())
	defer service.Stop()

	doctor := &entities.Doctor{ID: "doc-1", Name: "Dr. Changed", Specialization: "Cardiologist", Region: "Palghar"}
	eventChan <- entities.NewRegistryEvent(entities.RegistryEventTypeDoctorUpdated, doctor)

	patterns := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(patterns) < 4 {
		select {
		case p := <-invalidated:
			patterns[p] = true
		case <-timeout:
			t.Fatalf("timed out waiting for invalidation, got %v", patterns)
		}
	}

	assert.True(t, patterns["doctor:doc-1"])
	assert.True(t, patterns["doctors:list:*"])
	assert.True(t, patterns["doctors:search:*"])
	assert.True(t, patterns["http:cache:*"])
}
