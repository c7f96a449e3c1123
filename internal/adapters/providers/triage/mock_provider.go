package triage

import (
	"context"
	"strings"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/providers"
)

// MockTriageProvider implements a keyword-rule triage provider for
// development and testing. It never calls an external model.
type MockTriageProvider struct{}

// NewMockTriageProvider creates a new mock triage provider
func NewMockTriageProvider() providers.TriageProvider {
	return &MockTriageProvider{}
}

// keywordRule maps symptom keywords to a specialization suggestion
type keywordRule struct {
	keywords       []string
	specialization string
	reason         string
	urgency        entities.Urgency
	redFlags       []string
}

var keywordRules = []keywordRule{
	{
		keywords:       []string{"chest pain", "palpitation", "heart"},
		specialization: "Cardiologist",
		reason:         "Chest and heart related symptoms are best evaluated by a cardiologist.",
		urgency:        entities.UrgencyHigh,
		redFlags:       []string{"Chest pain spreading to arm or jaw", "Breathlessness at rest", "Fainting"},
	},
	{
		keywords:       []string{"rash", "itch", "acne", "skin"},
		specialization: "Dermatologist",
		reason:         "Skin complaints such as rashes and itching fall under dermatology.",
		urgency:        entities.UrgencyLow,
		redFlags:       []string{"Rapidly spreading rash", "Rash with high fever", "Blistering"},
	},
	{
		keywords:       []string{"child", "baby", "infant"},
		specialization: "Pediatrician",
		reason:         "Symptoms in infants and children should be assessed by a pediatrician.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"High fever in an infant", "Refusal to feed", "Unusual drowsiness"},
	},
	{
		keywords:       []string{"bone", "joint", "fracture", "knee", "back pain"},
		specialization: "Orthopedic",
		reason:         "Bone and joint complaints are evaluated by an orthopedic specialist.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"Visible deformity", "Inability to bear weight", "Numbness below the injury"},
	},
	{
		keywords:       []string{"headache", "migraine", "seizure", "dizziness", "numbness"},
		specialization: "Neurologist",
		reason:         "Persistent neurological symptoms warrant a neurologist's assessment.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"Sudden worst-ever headache", "Weakness on one side", "Loss of consciousness"},
	},
	{
		keywords:       []string{"ear", "nose", "throat", "sinus", "hearing"},
		specialization: "ENT Specialist",
		reason:         "Ear, nose and throat complaints are handled by an ENT specialist.",
		urgency:        entities.UrgencyLow,
		redFlags:       []string{"Difficulty breathing", "Sudden hearing loss", "High fever with neck stiffness"},
	},
	{
		keywords:       []string{"anxiety", "depression", "sleep", "stress", "panic"},
		specialization: "Psychiatrist",
		reason:         "Mood, sleep and stress related concerns are best addressed by a psychiatrist.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"Thoughts of self-harm", "Inability to care for oneself", "Severe agitation"},
	},
	{
		keywords:       []string{"stomach", "abdominal", "vomit", "diarrhea", "acidity"},
		specialization: "Gastroenterologist",
		reason:         "Digestive complaints fall under gastroenterology.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"Blood in vomit or stool", "Severe dehydration", "Rigid abdomen"},
	},
	{
		keywords:       []string{"eye", "vision", "blurry"},
		specialization: "Ophthalmologist",
		reason:         "Eye and vision problems are evaluated by an ophthalmologist.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"Sudden vision loss", "Eye injury", "Severe eye pain"},
	},
	{
		keywords:       []string{"cough", "breathing", "wheez", "asthma"},
		specialization: "Pulmonologist",
		reason:         "Persistent respiratory symptoms warrant a pulmonologist's assessment.",
		urgency:        entities.UrgencyMedium,
		redFlags:       []string{"Breathlessness at rest", "Coughing up blood", "Blue lips or fingertips"},
	},
}

// Classify maps a free-text symptom description to a triage suggestion
func (m *MockTriageProvider) Classify(ctx context.Context, symptoms string) (*entities.Suggestion, error) {
	normalized := strings.ToLower(symptoms)

	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				suggestion := &entities.Suggestion{
					Specialization: rule.specialization,
					Reason:         rule.reason,
					Urgency:        rule.urgency,
					RedFlags:       rule.redFlags,
				}
				suggestion.Normalize()
				return suggestion, nil
			}
		}
	}

	return entities.DefaultSuggestion(), nil
}
