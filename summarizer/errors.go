package summarizer

import (
	"errors"
	"fmt"
)

var errEmptyCompletion = errors.New("model returned no text")

// SummarizationError reports a failed or unusable model call.
type SummarizationError struct {
	Model string
	Err   error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization with %s failed: %v", e.Model, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}
