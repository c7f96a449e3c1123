package triage

import (
	"context"
	"fmt"

	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/infrastructure/clients/gemini"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
	"github.com/aarogyaai/backend/pkg/config"
)

// NewTriageProvider creates a triage provider from configuration. The
// Gemini-backed provider is used when configured with an API key;
// otherwise the keyword mock keeps development environments working.
func NewTriageProvider(ctx context.Context, cfg *config.TriageConfig) (providers.TriageProvider, func(), error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, nil, fmt.Errorf("gemini triage provider requires an API key")
		}
		client, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to close gemini client")
			}
		}
		return client, cleanup, nil
	case "mock", "":
		return NewMockTriageProvider(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown triage provider: %s", cfg.Provider)
	}
}
