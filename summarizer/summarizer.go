package summarizer

import (
	"context"
	"strings"

	"github.com/pevans/techdigest/config"
	"github.com/pevans/techdigest/headline"
	"github.com/rs/zerolog"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Summarizer turns extracted headlines into a Slack-ready digest.
type Summarizer struct {
	generator Generator
	model     string
	log       zerolog.Logger
}

// New creates a summarizer that calls generator with the model named in
// cfg.
func New(cfg *config.RunConfig, generator Generator, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		generator: generator,
		model:     cfg.ModelName,
		log:       log.With().Str("component", "summarizer").Str("model", cfg.ModelName).Logger(),
	}
}

// Summarize asks the model for a top-10 digest of items and formats the
// answer for Slack. The model is called once. Whether it really returned ten
// stories is not checked.
func (s *Summarizer) Summarize(ctx context.Context, items []headline.Item) (string, error) {
	prompt := BuildPrompt(headline.Render(items))
	s.log.Debug().Int("items", len(items)).Int("prompt_chars", len(prompt)).Msg("Requesting digest")

	raw, err := s.generator.Generate(ctx, s.model, prompt)
	if err != nil {
		return "", &SummarizationError{Model: s.model, Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return "", &SummarizationError{Model: s.model, Err: errEmptyCompletion}
	}

	s.log.Info().Int("chars", len(raw)).Msg("Received digest")
	return FormatForSlack(raw), nil
}
