package providers

import (
	"context"
	"strings"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// registry change events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RegistryEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RegistryEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelRegistryUpdates is the channel for all registry updates
	EventChannelRegistryUpdates = "registry:updates"

	// EventChannelRegionPrefix is the prefix for region-specific channels
	EventChannelRegionPrefix = "registry:region:"
)

// GetRegionChannel returns the channel name for a specific region
func GetRegionChannel(region string) string {
	return EventChannelRegionPrefix + strings.ToLower(strings.TrimSpace(region))
}
