package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/matzehuels/statcard/pkg/card"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const prompt = `Give me one short, original, inspiring quote about programming or software craftsmanship.
Keep it under 120 characters. Respond with JSON only: {"quote": "...", "author": "..."}.
Use "Anonymous" as the author when the quote is not attributable.`

// contentGenerator is the subset of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAI asks a Gemini model for a fresh quote.
type GenAI struct {
	models contentGenerator
	model  string
}

// NewGenAI creates a Gemini-backed provider.
func NewGenAI(ctx context.Context, apiKey, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{models: client.Models, model: model}, nil
}

func (g *GenAI) Name() string { return "genai:" + g.model }

func (g *GenAI) Quote(ctx context.Context) (card.Quote, error) {
	temperature := float32(1.0)
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      &temperature,
		},
	)
	if err != nil {
		return card.Quote{}, fmt.Errorf("GenAI generate failed: %w", err)
	}
	return parseQuote(resp.Text())
}

// parseQuote decodes model output, tolerating a fenced code block around the JSON.
func parseQuote(text string) (card.Quote, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var q card.Quote
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &q); err != nil {
		return card.Quote{}, errors.Join(ErrInvalidQuote, err)
	}
	return validate(q)
}
