package techdigest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pevans/techdigest/discovery"
	"github.com/pevans/techdigest/headline"
	"github.com/pevans/techdigest/publisher"
	"github.com/rs/zerolog"
)

// Stage names used in logs and errors.
const (
	StageExtract   = "extract"
	StageSummarize = "summarize"
	StagePublish   = "publish"
)

// HeadlineSource produces the headlines for a run.
type HeadlineSource interface {
	Fetch(ctx context.Context) ([]headline.Item, error)
}

// DigestSummarizer turns headlines into formatted digest text.
type DigestSummarizer interface {
	Summarize(ctx context.Context, items []headline.Item) (string, error)
}

// DigestPublisher delivers the digest.
type DigestPublisher interface {
	Publish(ctx context.Context, text string) (*publisher.Receipt, error)
}

// StageError records which stage of a run failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result summarizes a successful run.
type Result struct {
	RunID     uuid.UUID
	Headlines int
	Digest    string
	Receipt   *publisher.Receipt
}

// Pipeline runs extraction, summarization and publishing in sequence.
type Pipeline struct {
	source     HeadlineSource
	summarizer DigestSummarizer
	publisher  DigestPublisher
	log        zerolog.Logger
}

// NewPipeline wires the three stages together.
func NewPipeline(source HeadlineSource, summarizer DigestSummarizer, publisher DigestPublisher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		source:     source,
		summarizer: summarizer,
		publisher:  publisher,
		log:        log,
	}
}

// Run performs one digest run. The first failing stage ends the run and is
// returned as a *StageError; later stages are not started, so nothing is
// posted unless every earlier stage succeeded.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.New()}
	log := p.log.With().Str("run_id", result.RunID.String()).Logger()
	log.Info().Msg("Starting digest run")

	items, err := p.source.Fetch(ctx)
	if err == nil && len(items) == 0 {
		err = &discovery.EmptyResultError{}
	}
	if err != nil {
		return nil, p.fail(log, StageExtract, err)
	}
	result.Headlines = len(items)

	digest, err := p.summarizer.Summarize(ctx, items)
	if err != nil {
		return nil, p.fail(log, StageSummarize, err)
	}
	result.Digest = digest

	receipt, err := p.publisher.Publish(ctx, digest)
	if err != nil {
		return nil, p.fail(log, StagePublish, err)
	}
	result.Receipt = receipt

	log.Info().
		Int("headlines", result.Headlines).
		Str("channel", receipt.Channel).
		Str("ts", receipt.Timestamp).
		Msg("Digest run complete")

	return result, nil
}

func (p *Pipeline) fail(log zerolog.Logger, stage string, err error) error {
	log.Error().Err(err).Str("stage", stage).Msg("Digest run aborted")
	return &StageError{Stage: stage, Err: err}
}
