package techdigest

import (
	"context"
	"errors"
	"testing"

	"github.com/pevans/techdigest/discovery"
	"github.com/pevans/techdigest/headline"
	"github.com/pevans/techdigest/publisher"
	"github.com/pevans/techdigest/summarizer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns canned headlines
type fakeSource struct {
	items []headline.Item
	err   error
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context) ([]headline.Item, error) {
	f.calls++
	return f.items, f.err
}

// fakeSummarizer records what it was asked to summarize
type fakeSummarizer struct {
	digest string
	err    error
	got    []headline.Item
	calls  int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, items []headline.Item) (string, error) {
	f.calls++
	f.got = items
	return f.digest, f.err
}

// fakePublisher records published text
type fakePublisher struct {
	err   error
	got   string
	calls int
}

func (f *fakePublisher) Publish(ctx context.Context, text string) (*publisher.Receipt, error) {
	f.calls++
	f.got = text
	if f.err != nil {
		return nil, f.err
	}
	return &publisher.Receipt{Channel: "C123", Timestamp: "1.2"}, nil
}

var testItems = []headline.Item{
	{Text: "A", URL: "https://www.techmeme.com/a"},
	{Text: "B", URL: "http://x/b"},
}

// TestRun_Success verifies data flows through every stage in order
func TestRun_Success(t *testing.T) {
	source := &fakeSource{items: testItems}
	sum := &fakeSummarizer{digest: "*A* <http://x|read more>"}
	pub := &fakePublisher{}

	result, err := NewPipeline(source, sum, pub, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testItems, sum.got)
	assert.Equal(t, "*A* <http://x|read more>", pub.got)
	assert.Equal(t, 2, result.Headlines)
	assert.Equal(t, "*A* <http://x|read more>", result.Digest)
	assert.Equal(t, &publisher.Receipt{Channel: "C123", Timestamp: "1.2"}, result.Receipt)
	assert.NotEmpty(t, result.RunID.String())
}

// TestRun_FetchError verifies extraction failures stop the run
func TestRun_FetchError(t *testing.T) {
	source := &fakeSource{err: &discovery.FetchError{URL: "https://www.techmeme.com/", StatusCode: 500}}
	sum := &fakeSummarizer{}
	pub := &fakePublisher{}

	_, err := NewPipeline(source, sum, pub, zerolog.Nop()).Run(context.Background())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageExtract, stageErr.Stage)
	var fetchErr *discovery.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, sum.calls, "summarizer should not run")
	assert.Zero(t, pub.calls, "publisher should not run")
}

// TestRun_EmptyHeadlines verifies an empty result without an error is still
// fatal
func TestRun_EmptyHeadlines(t *testing.T) {
	source := &fakeSource{items: []headline.Item{}}
	sum := &fakeSummarizer{}
	pub := &fakePublisher{}

	_, err := NewPipeline(source, sum, pub, zerolog.Nop()).Run(context.Background())

	var emptyErr *discovery.EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Zero(t, sum.calls)
	assert.Zero(t, pub.calls)
}

// TestRun_SummarizeError verifies nothing is published after a model
// failure
func TestRun_SummarizeError(t *testing.T) {
	source := &fakeSource{items: testItems}
	sum := &fakeSummarizer{err: &summarizer.SummarizationError{Model: "m", Err: errors.New("quota")}}
	pub := &fakePublisher{}

	_, err := NewPipeline(source, sum, pub, zerolog.Nop()).Run(context.Background())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageSummarize, stageErr.Stage)
	var sumErr *summarizer.SummarizationError
	assert.ErrorAs(t, err, &sumErr)
	assert.Zero(t, pub.calls, "publisher should not run")
}

// TestRun_PublishError verifies publish failures are reported
func TestRun_PublishError(t *testing.T) {
	source := &fakeSource{items: testItems}
	sum := &fakeSummarizer{digest: "body"}
	pub := &fakePublisher{err: &publisher.PublishError{Channel: "C123", Err: errors.New("invalid_auth")}}

	result, err := NewPipeline(source, sum, pub, zerolog.Nop()).Run(context.Background())

	assert.Nil(t, result)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StagePublish, stageErr.Stage)
	assert.Contains(t, err.Error(), "invalid_auth")
	assert.Equal(t, 1, pub.calls, "should not retry")
}
