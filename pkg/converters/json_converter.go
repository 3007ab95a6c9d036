package converters

import (
    "strings"
    "time"
    "unicode/utf8"

    "github.com/feichai0017/resume-parser/internal/models"
)

// TimestampLayout is the UTC ISO-8601 layout used in responses.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SuccessEnvelope is the body of a successful upload.
type SuccessEnvelope struct {
    Success   bool               `json:"success"`
    Data      models.ParseResult `json:"data"`
    Timestamp string             `json:"timestamp"`
}

// JSONConverter shapes extraction results into API responses. It holds no
// state; the clock is injectable for tests.
type JSONConverter struct {
    now func() time.Time
}

func NewJSONConverter() *JSONConverter {
    return &JSONConverter{now: time.Now}
}

// WithClock returns a converter that stamps responses with now().
func (c *JSONConverter) WithClock(now func() time.Time) *JSONConverter {
    return &JSONConverter{now: now}
}

// Convert derives the ParseResult of file from its extracted text.
func (c *JSONConverter) Convert(file *models.UploadedFile, text string) models.ParseResult {
    return models.ParseResult{
        FileName:   file.FileName,
        FileType:   file.MimeType,
        Text:       text,
        TextLength: TextLength(text),
        WordCount:  WordCount(text),
    }
}

// Envelope wraps result in the success envelope.
func (c *JSONConverter) Envelope(result models.ParseResult) SuccessEnvelope {
    return SuccessEnvelope{
        Success:   true,
        Data:      result,
        Timestamp: Timestamp(c.now()),
    }
}

// TextLength counts characters (runes), not bytes.
func TextLength(text string) int {
    return utf8.RuneCountInString(text)
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
    return len(strings.Fields(text))
}

func Timestamp(t time.Time) string {
    return t.UTC().Format(TimestampLayout)
}
