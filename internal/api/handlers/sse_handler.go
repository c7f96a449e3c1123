package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
)

// SSEHandler streams live registry changes to connected clients so
// directory views refresh without polling
type SSEHandler struct {
	eventBus providers.EventBus
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
	}
}

// StreamRegistryUpdates handles GET /api/registry/events
// An optional ?region= query narrows the stream to one region's channel.
func (h *SSEHandler) StreamRegistryUpdates(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	channel := providers.EventChannelRegistryUpdates
	if region := strings.TrimSpace(r.URL.Query().Get("region")); region != "" {
		channel = providers.GetRegionChannel(region)
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("channel", channel).
			Msg("failed to subscribe to registry events")
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	// Send initial connection event
	h.sendEvent(r.Context(), w, "connected", map[string]interface{}{
		"channel":   channel,
		"timestamp": time.Now(),
	})
	flusher.Flush()

	// Keep connection alive and forward events
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			h.sendEvent(r.Context(), w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			h.sendEvent(r.Context(), w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// sendEvent writes one SSE frame to the client
func (h *SSEHandler) sendEvent(ctx context.Context, w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Msg("failed to marshal sse event")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
