package discovery

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/techdigest/config"
	"github.com/pevans/techdigest/headline"
	"github.com/pevans/techdigest/scraper"
	"github.com/rs/zerolog"
)

// Extractor scrapes headlines from the aggregator's front page.
type Extractor struct {
	url        string
	origin     string
	strategies []scraper.Strategy
	httpClient *http.Client
	log        zerolog.Logger
}

// NewExtractor creates an extractor for the source configured in cfg, using
// the default strategies.
func NewExtractor(cfg *config.RunConfig, log zerolog.Logger) *Extractor {
	return &Extractor{
		url:        cfg.Source.URL,
		origin:     cfg.Source.Origin,
		strategies: scraper.DefaultStrategies,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		log:        log.With().Str("component", "discovery").Logger(),
	}
}

// Fetch downloads the page once and runs the strategies in order until one
// finds headlines. It returns an *EmptyResultError if none do.
func (e *Extractor) Fetch(ctx context.Context) ([]headline.Item, error) {
	e.log.Debug().Str("url", e.url).Msg("Fetching front page")

	doc, err := FetchHTML(ctx, e.httpClient, e.url)
	if err != nil {
		return nil, err
	}

	items, strategy := scraper.Run(doc, e.origin, e.strategies)
	if len(items) == 0 {
		return nil, &EmptyResultError{URL: e.url}
	}

	if strategy != e.strategies[0].Name {
		e.log.Warn().Str("strategy", strategy).Msg("Primary selector found nothing, used fallback")
	}
	e.log.Info().
		Str("strategy", strategy).
		Int("count", len(items)).
		Msg("Extracted headlines")

	return items, nil
}

// FetchHTML fetches the page at url and parses it. It makes a single
// attempt with default headers.
func FetchHTML(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	return doc, nil
}
