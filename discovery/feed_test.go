package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/pevans/techdigest/config"
	"github.com/pevans/techdigest/headline"
	"github.com/pevans/techdigest/scraper"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Techmeme</title>
    <item>
      <title>Chipmaker posts record quarter</title>
      <link>https://example.com/chips</link>
    </item>
    <item>
      <title>  Startup raises Series B  </title>
      <link>/river/startup</link>
    </item>
  </channel>
</rss>`

// Test helper: serve a feed and return a config pointing at it
func serveFeed(t *testing.T, status int, body string) *config.RunConfig {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Source.FeedURL = server.URL + "/feed.xml"
	cfg.Source.Origin = testOrigin
	return cfg
}

// TestFeedExtractor_Fetch verifies RSS items become headline items
func TestFeedExtractor_Fetch(t *testing.T) {
	cfg := serveFeed(t, http.StatusOK, testRSS)

	items, err := NewFeedExtractor(cfg, zerolog.Nop()).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []headline.Item{
		{Text: "Chipmaker posts record quarter", URL: "https://example.com/chips"},
		{Text: "Startup raises Series B", URL: testOrigin + "/river/startup"},
	}, items)
}

// TestFeedExtractor_Fetch_HTTPError verifies status errors become
// FetchError
func TestFeedExtractor_Fetch_HTTPError(t *testing.T) {
	cfg := serveFeed(t, http.StatusNotFound, "")

	_, err := NewFeedExtractor(cfg, zerolog.Nop()).Fetch(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

// TestFeedExtractor_Fetch_Empty verifies an empty feed is an
// EmptyResultError
func TestFeedExtractor_Fetch_Empty(t *testing.T) {
	cfg := serveFeed(t, http.StatusOK, `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`)

	_, err := NewFeedExtractor(cfg, zerolog.Nop()).Fetch(context.Background())

	var emptyErr *EmptyResultError
	assert.ErrorAs(t, err, &emptyErr)
}

// TestFeedToItems_SkipsIncomplete verifies entries without title or link
// are dropped
func TestFeedToItems_SkipsIncomplete(t *testing.T) {
	feed := &gofeed.Feed{Items: []*gofeed.Item{
		{Title: "", Link: "https://example.com/a"},
		{Title: "No link"},
		{Title: "Kept", Link: "https://example.com/kept"},
	}}

	items := FeedToItems(feed, testOrigin)

	assert.Equal(t, []headline.Item{{Text: "Kept", URL: "https://example.com/kept"}}, items)
}

// TestFeedToItems_Caps verifies the item cap applies to feeds too
func TestFeedToItems_Caps(t *testing.T) {
	feed := &gofeed.Feed{}
	for i := range 30 {
		feed.Items = append(feed.Items, &gofeed.Item{
			Title: fmt.Sprintf("Story %d", i),
			Link:  fmt.Sprintf("/s/%d", i),
		})
	}

	items := FeedToItems(feed, testOrigin)

	require.Len(t, items, scraper.MaxHeadlines)
	assert.Equal(t, testOrigin+"/s/0", items[0].URL)
}
