package headline

import (
	"fmt"
	"strings"
)

// Item is a single headline scraped from the aggregator. Text is trimmed and
// non-empty; URL is absolute.
type Item struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Render formats items as a numbered listing, one title line followed by an
// indented URL line per item, preserving order.
func Render(items []Item) string {
	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.Text))
		sb.WriteString(fmt.Sprintf("   %s\n", item.URL))
	}
	return sb.String()
}
