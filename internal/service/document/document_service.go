package document

import (
    "context"
    "errors"
    "fmt"

    "github.com/feichai0017/resume-parser/internal/agent"
)

// ErrUnsupportedFormat is returned for a MIME type with no extractor.
var ErrUnsupportedFormat = agent.ErrUnsupportedFormat

// Parser turns document bytes into plain text. The returned text may be
// empty or whitespace-only; a non-nil error means extraction failed.
type Parser interface {
    ParseDocument(ctx context.Context, content []byte, mimeType string) (string, error)
}

// ExtractionError wraps any failure of the underlying extractor.
type ExtractionError struct {
    MimeType string
    Err      error
}

func (e *ExtractionError) Error() string {
    return fmt.Sprintf("extract %s: %v", e.MimeType, e.Err)
}

func (e *ExtractionError) Unwrap() error {
    return e.Err
}

// IsExtractionError reports whether err came from document extraction.
func IsExtractionError(err error) bool {
    var extErr *ExtractionError
    return errors.As(err, &extErr)
}
