package providers

import (
	"context"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

// TriageProvider defines the interface for symptom-to-specialization
// classification services.
//
// Classify must never block a search with a hard failure: implementations
// coerce out-of-set specializations to the general-physician label and
// substitute entities.DefaultSuggestion on any upstream error, so the
// returned suggestion is always usable.
type TriageProvider interface {
	// Classify maps a free-text symptom description to a triage suggestion
	Classify(ctx context.Context, symptoms string) (*entities.Suggestion, error)
}
