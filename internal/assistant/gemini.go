package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

// maxContextDeals bounds how much of the collection rides along with a query.
const maxContextDeals = 10

// Insight is the constrained reply shape the shopping assistant renders.
type Insight struct {
	Recommendation string   `json:"recommendation"`
	TopDeals       []string `json:"topDeals"`
}

type Client struct {
	model *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, nil // Return nil client if no key provided
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelID)
	model.SetTemperature(0.2) // Low temperature for deterministic output
	model.ResponseMIMEType = "application/json"

	// Define the schema for Structured Outputs
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendation": {
				Type:        genai.TypeString,
				Description: "A short, persuasive recommendation of the best value deals for the shopper's query.",
			},
			"topDeals": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Exact titles of the recommended deals, best first.",
			},
		},
		Required: []string{"recommendation", "topDeals"},
	}

	return &Client{model: model}, nil
}

// Enabled reports whether a live model is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.model != nil
}

// DealInsight asks the model for a recommendation over a bounded prefix of
// the current collection. A nil client degrades to the local fallback.
func (c *Client) DealInsight(ctx context.Context, query string, deals []models.Deal) (Insight, error) {
	if !c.Enabled() {
		return Fallback(deals), nil // Graceful degradation
	}

	window := deals
	if len(window) > maxContextDeals {
		window = window[:maxContextDeals]
	}
	dealsJSON, err := json.Marshal(window)
	if err != nil {
		return Insight{}, fmt.Errorf("failed to encode deal context: %w", err)
	}

	prompt := fmt.Sprintf(`User is looking for: %q.
Available deals: %s.
Recommend the top 2 best value deals from the list and explain why.
Keep it short, professional, and persuasive.
Output JSON adhering to the schema.`, query, string(dealsJSON))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Insight{}, fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Insight{}, fmt.Errorf("no response candidates from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok {
			continue
		}
		// Clean up potential markdown formatting just in case
		jsonStr := strings.TrimSpace(string(txt))
		jsonStr = strings.TrimPrefix(jsonStr, "```json")
		jsonStr = strings.TrimPrefix(jsonStr, "```")
		jsonStr = strings.TrimSuffix(jsonStr, "```")

		var insight Insight
		if err := json.Unmarshal([]byte(jsonStr), &insight); err != nil {
			return Insight{}, fmt.Errorf("failed to parse gemini response: %w", err)
		}
		return insight, nil
	}

	return Insight{}, fmt.Errorf("no text part in response")
}

// Fallback builds the deterministic local reply used when the model is
// unconfigured or unreachable: the first two records of the collection.
func Fallback(deals []models.Deal) Insight {
	top := make([]string, 0, 2)
	for _, d := range deals {
		top = append(top, d.Title)
		if len(top) == 2 {
			break
		}
	}
	return Insight{
		Recommendation: "I couldn't analyze the deals right now, but the 'Loot' badges mark the strongest discounts!",
		TopDeals:       top,
	}
}
