package discovery

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/pevans/techdigest/config"
	"github.com/pevans/techdigest/headline"
	"github.com/pevans/techdigest/scraper"
	"github.com/rs/zerolog"
)

// FeedExtractor reads headlines from the aggregator's RSS or Atom feed
// instead of scraping its front page. gofeed handles both formats.
type FeedExtractor struct {
	url    string
	origin string
	parser *gofeed.Parser
	log    zerolog.Logger
}

// NewFeedExtractor creates an extractor for cfg.Source.FeedURL.
func NewFeedExtractor(cfg *config.RunConfig, log zerolog.Logger) *FeedExtractor {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.HTTPTimeout}

	return &FeedExtractor{
		url:    cfg.Source.FeedURL,
		origin: cfg.Source.Origin,
		parser: parser,
		log:    log.With().Str("component", "discovery").Str("source", "feed").Logger(),
	}
}

// Fetch parses the feed and returns up to scraper.MaxHeadlines items in feed
// order.
func (f *FeedExtractor) Fetch(ctx context.Context) ([]headline.Item, error) {
	f.log.Debug().Str("url", f.url).Msg("Fetching feed")

	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &FetchError{URL: f.url, StatusCode: httpErr.StatusCode}
		}
		return nil, &FetchError{URL: f.url, Err: err}
	}

	items := FeedToItems(feed, f.origin)
	if len(items) == 0 {
		return nil, &EmptyResultError{URL: f.url}
	}

	f.log.Info().Int("count", len(items)).Msg("Extracted headlines from feed")
	return items, nil
}

// FeedToItems converts feed entries to headline items, skipping entries
// without a title or link.
func FeedToItems(feed *gofeed.Feed, origin string) []headline.Item {
	items := []headline.Item{}
	for _, entry := range feed.Items {
		if len(items) >= scraper.MaxHeadlines {
			break
		}

		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		items = append(items, headline.Item{
			Text: title,
			URL:  scraper.ResolveURL(origin, link),
		})
	}
	return items
}
