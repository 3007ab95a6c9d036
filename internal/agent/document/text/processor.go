package text

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/feichai0017/resume-parser/internal/models"
	"github.com/feichai0017/resume-parser/pkg/logger"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

type Processor struct {
	logger logger.Logger
}

func NewProcessor(logger logger.Logger) *Processor {
	return &Processor{logger: logger}
}

func (p *Processor) CanProcess(mimeType string) bool {
	return mimeType == models.MimeTypeText
}

// Process returns the file content as UTF-8. A UTF-8 BOM is dropped, UTF-16
// input with a BOM is transcoded and other non-UTF-8 input is read as
// Windows-1252. Content carrying control bytes is sniffed and rejected unless
// it is still text.
func (p *Processor) Process(ctx context.Context, reader io.Reader) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	if len(content) == 0 {
		return "", nil
	}

	if bytes.HasPrefix(content, utf16LEBOM) || bytes.HasPrefix(content, utf16BEBOM) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
		if err != nil {
			return "", fmt.Errorf("failed to decode utf-16 text: %w", err)
		}
		return string(decoded), nil
	}

	if hasControlBytes(content) {
		detected := mimetype.Detect(content)
		if !isText(detected) {
			p.logger.Warn("Declared text file is not text",
				logger.String("detected", detected.String()),
			)
			return "", fmt.Errorf("content is %s, not plain text", detected.String())
		}
	}

	if utf8.Valid(content) {
		return string(bytes.TrimPrefix(content, utf8BOM)), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("failed to decode legacy text: %w", err)
	}
	p.logger.Debug("Decoded non-UTF-8 text as Windows-1252", logger.Int("bytes", len(content)))
	return string(decoded), nil
}

// hasControlBytes reports whether content holds C0 control bytes other than
// whitespace. Plain text never does; binary formats nearly always do.
func hasControlBytes(content []byte) bool {
	for _, b := range content {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' && b != '\v' {
			return true
		}
	}
	return false
}

// isText reports whether m is text/plain or one of its descendants
// (csv, html, json, ...). Those are all readable as a résumé.
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(models.MimeTypeText) {
			return true
		}
	}
	return false
}

// Close implements document.Processor.
func (p *Processor) Close() error {
	return nil
}
