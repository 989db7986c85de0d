package discovery

import "fmt"

// FetchError reports that the aggregator could not be reached or answered
// with a non-success status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EmptyResultError reports that a page was fetched but no headlines could
// be extracted from it.
type EmptyResultError struct {
	URL string
}

func (e *EmptyResultError) Error() string {
	if e.URL == "" {
		return "no headlines found"
	}
	return fmt.Sprintf("no headlines found at %s", e.URL)
}
