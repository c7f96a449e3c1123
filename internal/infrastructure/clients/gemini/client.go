package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/aarogyaai/backend/internal/domain/entities"
	"github.com/aarogyaai/backend/internal/domain/providers"
	"github.com/aarogyaai/backend/internal/infrastructure/observability"
	"github.com/aarogyaai/backend/pkg/config"
)

// Client implements the Gemini-backed triage provider.
type Client struct {
	client  *genai.Client
	modelID string
}

var _ providers.TriageProvider = (*Client)(nil)

// NewClient creates a new Gemini triage client.
func NewClient(ctx context.Context, cfg *config.TriageConfig) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	modelID := strings.TrimSpace(cfg.Model)
	if modelID == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		modelID: modelID,
	}, nil
}

type triagePayload struct {
	Specialization string   `json:"specialization"`
	Reason         string   `json:"reason"`
	Urgency        string   `json:"urgency"`
	RedFlags       []string `json:"red_flags"`
}

// Classify maps a symptom description to a triage suggestion. Inference
// failures are absorbed here: the caller always receives a usable
// suggestion, falling back to the fixed general-physician default.
func (c *Client) Classify(ctx context.Context, symptoms string) (*entities.Suggestion, error) {
	start := time.Now()

	suggestion, err := c.classify(ctx, symptoms)
	recordTriageMetric(ctx, c.modelID, time.Since(start), err)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("model", c.modelID).
			Msg("triage inference failed, using default suggestion")
		return entities.DefaultSuggestion(), nil
	}

	return suggestion, nil
}

func (c *Client) classify(ctx context.Context, symptoms string) (*entities.Suggestion, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = triageResponseSchema()
	model.SystemInstruction = genai.NewUserContent(genai.Text(triageSystemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(buildTriageUserPrompt(symptoms)))
	if err != nil {
		return nil, fmt.Errorf("gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	cleaned := stripCodeFences(text.String())
	if cleaned == "" {
		return nil, errors.New("gemini response missing output text")
	}

	var payload triagePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse triage payload: %w", err)
	}

	suggestion := &entities.Suggestion{
		Specialization: payload.Specialization,
		Reason:         payload.Reason,
		Urgency:        entities.Urgency(payload.Urgency),
		RedFlags:       payload.RedFlags,
	}
	suggestion.Normalize()

	return suggestion, nil
}

// stripCodeFences cleans Markdown code blocks if present
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

// Close releases resources held by the Gemini client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
