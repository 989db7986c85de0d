package summarizer

import (
	"regexp"
	"strings"
)

// LinkLabel is the text shown for every link in the digest.
const LinkLabel = "read more"

var (
	repeatedEmphasis = regexp.MustCompile(`\*{2,}`)

	// A URL runs until whitespace or a closing bracket. A leading "<" marks
	// one that is already a Slack link.
	bareURL = regexp.MustCompile(`<?https?://[^\s)\]>]+`)
)

// FormatForSlack rewrites model output into Slack mrkdwn. Runs of asterisks
// collapse to one, and bare URLs become <URL|read more> links. URLs already
// inside <...> are left alone. Nothing else is changed.
func FormatForSlack(raw string) string {
	text := repeatedEmphasis.ReplaceAllString(raw, "*")
	return bareURL.ReplaceAllStringFunc(text, func(url string) string {
		if strings.HasPrefix(url, "<") {
			return url
		}
		return "<" + url + "|" + LinkLabel + ">"
	})
}
