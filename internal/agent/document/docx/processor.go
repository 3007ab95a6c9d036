package docx

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/feichai0017/resume-parser/internal/models"
	"github.com/feichai0017/resume-parser/pkg/logger"
)

const (
	// wordML is the main WordprocessingML namespace.
	wordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// markupCompat holds mc:AlternateContent; its Fallback repeats the Choice.
	markupCompat = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

type Processor struct {
	logger logger.Logger
}

func NewProcessor(logger logger.Logger) *Processor {
	return &Processor{logger: logger}
}

func (p *Processor) CanProcess(mimeType string) bool {
	return mimeType == models.MimeTypeDOCX
}

// Process opens the DOCX container in memory and flattens word/document.xml
// into text: one line per paragraph, tabs and breaks preserved.
func (p *Processor) Process(ctx context.Context, reader io.Reader) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer doc.Close()

	text, err := documentText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	p.logger.Debug("DOCX text extracted", logger.Int("bytes", len(content)))
	return text, nil
}

// documentText walks the document XML token stream and keeps the character
// data of w:t elements.
func documentText(documentXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		b       strings.Builder
		inText  bool
		inPara  bool
		started bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isFallback(t.Name) {
				if err := decoder.Skip(); err != nil {
					return "", err
				}
				continue
			}
			if !isWordML(t.Name.Space) {
				continue
			}
			switch t.Name.Local {
			case "p":
				if started {
					b.WriteByte('\n')
				}
				inPara = true
				started = true
			case "t":
				inText = true
			case "tab":
				if inPara {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				inPara = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}

// Close implements document.Processor.
func (p *Processor) Close() error {
	return nil
}

// isWordML accepts the resolved namespace, a bare name, and the conventional
// "w" prefix left unresolved when the document omits its xmlns declaration.
func isWordML(space string) bool {
	return space == wordML || space == "" || space == "w"
}

func isFallback(name xml.Name) bool {
	return name.Local == "Fallback" && (name.Space == markupCompat || name.Space == "mc")
}
