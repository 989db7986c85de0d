package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiGenerator implements Generator with Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	log    zerolog.Logger
}

// NewGeminiGenerator creates a Gemini client authenticated with apiKey.
func NewGeminiGenerator(ctx context.Context, apiKey string, log zerolog.Logger) (*GeminiGenerator, error) {
	return NewGeminiGeneratorWithBaseURL(ctx, apiKey, "", log)
}

// NewGeminiGeneratorWithBaseURL creates a Gemini client that talks to
// baseURL instead of the public endpoint. An empty baseURL keeps the
// default.
func NewGeminiGeneratorWithBaseURL(ctx context.Context, apiKey, baseURL string, log zerolog.Logger) (*GeminiGenerator, error) {
	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{
			BaseURL: baseURL,
		}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		log:    log.With().Str("provider", "gemini").Logger(),
	}, nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyCompletion
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if resp.UsageMetadata != nil {
		g.log.Debug().
			Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount).
			Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount).
			Msg("Gemini usage")
	}

	return text.String(), nil
}

// ModelInfo describes one model in the provider's catalog.
type ModelInfo struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name"`
	Description      string   `json:"description,omitempty"`
	SupportedActions []string `json:"supported_actions,omitempty"`
	InputTokenLimit  int32    `json:"input_token_limit"`
	OutputTokenLimit int32    `json:"output_token_limit"`
}

// ListModels returns every model the API key can see, following pagination
// to the end.
func (g *GeminiGenerator) ListModels(ctx context.Context) ([]ModelInfo, error) {
	page, err := g.client.Models.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var models []ModelInfo
	for {
		for _, model := range page.Items {
			if model == nil {
				continue
			}
			models = append(models, ModelInfo{
				Name:             strings.TrimPrefix(model.Name, "models/"),
				DisplayName:      model.DisplayName,
				Description:      model.Description,
				SupportedActions: model.SupportedActions,
				InputTokenLimit:  model.InputTokenLimit,
				OutputTokenLimit: model.OutputTokenLimit,
			})
		}

		if page.NextPageToken == "" {
			break
		}
		page, err = page.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
	}

	return models, nil
}
