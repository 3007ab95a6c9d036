package document

import (
    "context"
    "io"
)

// Processor extracts plain text from one family of document formats.
type Processor interface {
    // CanProcess reports whether the processor handles the given MIME type.
    CanProcess(mimeType string) bool

    // Process reads the whole document and returns its text. An empty string
    // with a nil error means the document parsed but carried no text.
    Process(ctx context.Context, reader io.Reader) (string, error)

    // Close releases resources held by the processor.
    Close() error
}
