package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiGenerator drafts plans with the Google Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator creates a Generator backed by the given Gemini model.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiGenerator{client: client, model: client.GenerativeModel(modelName)}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no plan generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("generated plan is not text")
	}

	return coercePlanJSON(string(text))
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

// coercePlanJSON returns the model output as a JSON document. Models
// sometimes wrap the object in a markdown fence or answer in prose; fenced
// JSON is unwrapped, prose is kept as a notes-only plan.
func coercePlanJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	fallback, err := json.Marshal(map[string]string{"notes": text})
	if err != nil {
		return nil, err
	}
	return fallback, nil
}
