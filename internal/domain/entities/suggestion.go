package entities

import "strings"

// Urgency represents the clinical urgency of a triage suggestion
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// GeneralPhysician is the safety-net specialization every unresolvable
// triage collapses to.
const GeneralPhysician = "General Physician"

// ValidSpecializations is the fixed label set the triage provider is
// constrained to. Anything outside this set is coerced to GeneralPhysician.
var ValidSpecializations = []string{
	"General Physician", "Cardiologist", "Dermatologist",
	"Pediatrician", "Orthopedic", "Neurologist",
	"Gynecologist", "ENT Specialist", "Psychiatrist",
	"Gastroenterologist", "Oncologist", "Ophthalmologist",
	"Physiotherapist", "Pulmonologist", "Urologist", "Endocrinologist",
}

// Suggestion is the structured triage result for a symptom description.
// It is produced fresh per search and never persisted.
type Suggestion struct {
	Specialization string   `json:"specialization"`
	Reason         string   `json:"reason"`
	Urgency        Urgency  `json:"urgency"`
	RedFlags       []string `json:"red_flags"`
}

// Normalize coerces the suggestion into the supported domain: an
// out-of-set specialization becomes GeneralPhysician and an unknown
// urgency becomes medium.
func (s *Suggestion) Normalize() {
	if !IsValidSpecialization(s.Specialization) {
		s.Specialization = GeneralPhysician
	}
	switch s.Urgency {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		s.Urgency = UrgencyMedium
	}
}

// IsValidSpecialization reports whether the label is in the fixed set.
// Matching ignores case and surrounding whitespace.
func IsValidSpecialization(label string) bool {
	label = strings.TrimSpace(label)
	for _, valid := range ValidSpecializations {
		if strings.EqualFold(label, valid) {
			return true
		}
	}
	return false
}

// DefaultSuggestion returns the fixed safe fallback used whenever the
// triage provider fails or returns unusable data.
func DefaultSuggestion() *Suggestion {
	return &Suggestion{
		Specialization: GeneralPhysician,
		Reason: "Your symptoms require a clinical assessment. A General Physician is the " +
			"best first contact for a physical examination and diagnostic roadmap.",
		Urgency: UrgencyMedium,
		RedFlags: []string{
			"Sudden severe pain",
			"Shortness of breath",
			"Fainting",
			"Severe allergic reaction",
		},
	}
}
