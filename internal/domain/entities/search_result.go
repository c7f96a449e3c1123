package entities

// SearchStatus describes how well a triage search matched the registry.
type SearchStatus string

const (
	// SearchStatusSpecialist means every returned doctor practices the
	// suggested specialization.
	SearchStatusSpecialist SearchStatus = "specialist"

	// SearchStatusFallback means the suggested specialization had no match
	// and broader results (general physicians or any doctor in the region)
	// were returned instead.
	SearchStatusFallback SearchStatus = "fallback"

	// SearchStatusEmpty means no doctor matched at any tier.
	SearchStatusEmpty SearchStatus = "empty"
)

// SearchResult is the outcome of one full triage search: the suggestion,
// the matched doctors ranked by experience, and the match-quality status.
type SearchResult struct {
	Suggestion *Suggestion  `json:"suggestion"`
	Doctors    []*Doctor    `json:"doctors"`
	Status     SearchStatus `json:"status"`
	Generation uint64       `json:"-"`
}
