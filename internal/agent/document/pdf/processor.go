package pdf

import (
    "bytes"
    "context"
    "fmt"
    "io"
    "strings"

    "github.com/ledongthuc/pdf"
    "golang.org/x/sync/errgroup"

    "github.com/feichai0017/resume-parser/internal/models"
    "github.com/feichai0017/resume-parser/pkg/logger"
)

// maxWorkers bounds how many pages are decoded at once.
const maxWorkers = 4

type Processor struct {
    logger logger.Logger
}

func NewProcessor(logger logger.Logger) *Processor {
    return &Processor{
        logger: logger,
    }
}

func (p *Processor) CanProcess(mimeType string) bool {
    return mimeType == models.MimeTypePDF
}

// Process returns the text of every page, in page order, separated by newlines.
func (p *Processor) Process(ctx context.Context, file io.Reader) (text string, err error) {
    content, err := io.ReadAll(file)
    if err != nil {
        return "", fmt.Errorf("failed to read pdf: %w", err)
    }

    // ledongthuc/pdf panics on some malformed inputs
    defer func() {
        if r := recover(); r != nil {
            text = ""
            err = fmt.Errorf("malformed pdf: %v", r)
        }
    }()

    reader := bytes.NewReader(content)
    pdfReader, err := pdf.NewReader(reader, reader.Size())
    if err != nil {
        return "", fmt.Errorf("failed to open pdf: %w", err)
    }

    numPages := pdfReader.NumPage()
    pages := make([]string, numPages)

    g, ctx := errgroup.WithContext(ctx)
    g.SetLimit(maxWorkers)

    for i := 1; i <= numPages; i++ {
        pageNum := i
        g.Go(func() error {
            if err := ctx.Err(); err != nil {
                return err
            }

            pageText, err := extractPage(pdfReader, pageNum)
            if err != nil {
                return err
            }
            pages[pageNum-1] = pageText
            return nil
        })
    }

    if err := g.Wait(); err != nil {
        return "", err
    }

    p.logger.Debug("PDF text extracted",
        logger.Int("pages", numPages),
        logger.Int("bytes", len(content)),
    )

    return strings.Join(pages, "\n"), nil
}

func extractPage(r *pdf.Reader, pageNum int) (text string, err error) {
    defer func() {
        if rec := recover(); rec != nil {
            err = fmt.Errorf("failed to get text from page %d: %v", pageNum, rec)
        }
    }()

    page := r.Page(pageNum)
    if page.V.IsNull() {
        return "", nil
    }

    text, err = page.GetPlainText(nil)
    if err != nil {
        return "", fmt.Errorf("failed to get text from page %d: %w", pageNum, err)
    }
    return text, nil
}

// Close implements document.Processor.
func (p *Processor) Close() error {
    return nil
}
