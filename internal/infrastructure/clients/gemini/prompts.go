package gemini

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

const triageSystemPrompt = `You are a clinical navigation engine. You analyze patient symptoms and return the best doctor specialization from a fixed list. You prioritize safety and accuracy. You are professional, reassuring, and never provide a diagnosis.`

func buildTriageUserPrompt(symptoms string) string {
	return fmt.Sprintf(`Patient input: %q.

ROLE: You are an elite Clinical Triage Expert. Your goal is to guide the user to the single most appropriate medical specialist from this list: %s.

SPECIALIST MAPPING RULES:
1. EYE PROBLEMS (blurry vision, redness, itching in eye): Suggest 'Ophthalmologist'.
2. EAR/NOSE/THROAT (ear pain, sinus, throat infection, hearing loss): Suggest 'ENT Specialist'.
3. BONES/JOINTS/MUSCLE INJURY (fracture, back pain, joint stiffness): Suggest 'Orthopedic'.
4. HEART/CHEST (palpitations, non-respiratory chest pain): Suggest 'Cardiologist'.
5. SKIN/HAIR (rash, acne, hair fall, moles): Suggest 'Dermatologist'.
6. CHILDREN (any symptom if user is a child/baby): Suggest 'Pediatrician'.
7. PREGNANCY/FEMALE HEALTH (menstrual issues, maternity): Suggest 'Gynecologist'.
8. STOMACH/DIGESTION (acidity, persistent stomach pain, liver): Suggest 'Gastroenterologist'.
9. BRAIN/NERVES (migraine, tremors, numbness, seizures): Suggest 'Neurologist'.
10. REHAB (post-surgery recovery, muscle strengthening): Suggest 'Physiotherapist'.
11. VAGUE/MULTIPLE (fever, chills, cold, general weakness): Suggest 'General Physician'.

SAFETY PROTOCOL:
- Do NOT diagnose (e.g., don't say "You have flu").
- Use professional triage language: "Your symptoms align with conditions typically managed by a..."
- Identify life-threatening red flags specifically for the described symptoms.`,
		symptoms, strings.Join(entities.ValidSpecializations, ", "))
}

func triageResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"specialization": {
				Type:        genai.TypeString,
				Description: "Must be exactly one from the approved list.",
			},
			"reason": {
				Type:        genai.TypeString,
				Description: "A 2-sentence professional explanation of the specialist's role for these symptoms.",
			},
			"urgency": {
				Type:        genai.TypeString,
				Enum:        []string{"low", "medium", "high"},
				Description: "Clinical urgency based on symptom severity.",
			},
			"red_flags": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Emergency symptoms requiring immediate ER visit.",
			},
		},
		Required: []string{"specialization", "reason", "urgency", "red_flags"},
	}
}
