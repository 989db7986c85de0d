package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/techdigest/headline"
)

const (
	// MaxHeadlines caps how many items any strategy collects.
	MaxHeadlines = 15

	// MinFallbackTextLength is the length a fallback headline's text must
	// exceed to be accepted. Shorter emphasis text is usually a label, not a
	// story.
	MinFallbackTextLength = 20

	// PrimarySelector matches one headline entry on the Techmeme front page.
	PrimarySelector = ".ii"

	// EmphasisSelector matches the emphasis elements searched by the
	// fallback strategy.
	EmphasisSelector = "strong, b"
)

// ExtractFunc pulls headline items out of a parsed document. Root-relative
// links are resolved against origin.
type ExtractFunc func(doc *goquery.Document, origin string) []headline.Item

// Strategy is a named way of extracting headlines from the aggregator's
// markup.
type Strategy struct {
	Name     string
	Selector string
	Extract  ExtractFunc
}

// DefaultStrategies lists the strategies in the order they are tried.
var DefaultStrategies = []Strategy{
	{Name: "primary", Selector: PrimarySelector, Extract: ExtractPrimary},
	{Name: "emphasis-fallback", Selector: EmphasisSelector, Extract: ExtractEmphasis},
}

// Run tries each strategy in order and returns the items of the first one
// that finds anything, along with that strategy's name. If none do, it
// returns nil and an empty name.
func Run(doc *goquery.Document, origin string, strategies []Strategy) ([]headline.Item, string) {
	for _, strategy := range strategies {
		items := strategy.Extract(doc, origin)
		if len(items) > 0 {
			return items, strategy.Name
		}
	}
	return nil, ""
}

// ExtractPrimary takes the first link and the full text of every headline
// entry, in document order.
func ExtractPrimary(doc *goquery.Document, origin string) []headline.Item {
	items := []headline.Item{}

	doc.Find(PrimarySelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Find("a[href]").First().Attr("href")
		text := strings.TrimSpace(s.Text())
		if !ok || strings.TrimSpace(href) == "" || text == "" {
			return true
		}

		items = append(items, headline.Item{
			Text: text,
			URL:  ResolveURL(origin, strings.TrimSpace(href)),
		})
		return len(items) < MaxHeadlines
	})

	return items
}

// ExtractEmphasis is the fallback for when the site's headline markup has
// changed. It looks at bold text and takes the link inside it, or the link
// wrapping it. Emphasis nested inside an already accepted element is
// skipped.
func ExtractEmphasis(doc *goquery.Document, origin string) []headline.Item {
	items := []headline.Item{}
	accepted := doc.Selection.Slice(0, 0)

	doc.Find(EmphasisSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.ParentsFiltered(EmphasisSelector).IsSelection(accepted) {
			return true
		}

		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) <= MinFallbackTextLength {
			return true
		}

		href, ok := s.Find("a[href]").First().Attr("href")
		if !ok {
			href, ok = s.Closest("a[href]").Attr("href")
		}
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		accepted = accepted.AddSelection(s)
		items = append(items, headline.Item{
			Text: text,
			URL:  ResolveURL(origin, strings.TrimSpace(href)),
		})
		return len(items) < MaxHeadlines
	})

	return items
}

// ResolveURL prefixes root-relative hrefs with origin. Any other href is
// returned unchanged.
func ResolveURL(origin, href string) string {
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	return href
}
