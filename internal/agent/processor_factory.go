package agent

import (
    "context"
    "errors"
    "fmt"

    cfg "github.com/feichai0017/resume-parser/config"
    "github.com/feichai0017/resume-parser/internal/agent/document"
    "github.com/feichai0017/resume-parser/internal/agent/document/docx"
    "github.com/feichai0017/resume-parser/internal/agent/document/pdf"
    "github.com/feichai0017/resume-parser/internal/agent/document/text"
    "github.com/feichai0017/resume-parser/internal/agent/document/textract"
    "github.com/feichai0017/resume-parser/internal/models"
    "github.com/feichai0017/resume-parser/pkg/logger"
)

// ErrUnsupportedFormat is returned when no processor is registered for a MIME type.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ProcessorFactory maps MIME types to text extractors. A MIME type may also
// have a fallback processor, tried when the primary yields no text.
type ProcessorFactory struct {
    processors map[string]document.Processor
    fallbacks  map[string]document.Processor
    logger     logger.Logger
}

// NewProcessorFactory registers the native PDF, DOCX and text processors.
// When textractCfg is enabled, Textract OCR becomes the PDF fallback.
func NewProcessorFactory(ctx context.Context, log logger.Logger, textractCfg *cfg.TextractConfig) (*ProcessorFactory, error) {
    factory := NewEmptyFactory(log)

    for mimeType, p := range map[string]document.Processor{
        models.MimeTypePDF:  pdf.NewProcessor(log),
        models.MimeTypeDOCX: docx.NewProcessor(log),
        models.MimeTypeText: text.NewProcessor(log),
    } {
        if err := factory.Register(mimeType, p); err != nil {
            return nil, err
        }
    }

    if textractCfg != nil && textractCfg.Enabled {
        ocr, err := textract.NewProcessor(ctx, &textract.Config{
            Region:        textractCfg.Region,
            AccessKey:     textractCfg.AccessKey,
            SecretKey:     textractCfg.SecretKey,
            MinConfidence: textractCfg.MinConfidence,
        }, log)
        if err != nil {
            return nil, fmt.Errorf("failed to create textract processor: %w", err)
        }
        if err := factory.RegisterFallback(models.MimeTypePDF, ocr); err != nil {
            return nil, err
        }
        log.Info("Textract OCR fallback enabled", logger.String("region", textractCfg.Region))
    }

    return factory, nil
}

// NewEmptyFactory returns a factory with nothing registered.
func NewEmptyFactory(log logger.Logger) *ProcessorFactory {
    return &ProcessorFactory{
        processors: make(map[string]document.Processor),
        fallbacks:  make(map[string]document.Processor),
        logger:     log,
    }
}

// Register makes p the primary processor for mimeType. p must accept it.
func (f *ProcessorFactory) Register(mimeType string, p document.Processor) error {
    if !p.CanProcess(mimeType) {
        return fmt.Errorf("processor %T cannot handle %s", p, mimeType)
    }
    f.processors[mimeType] = p
    return nil
}

// RegisterFallback makes p the fallback processor for mimeType.
func (f *ProcessorFactory) RegisterFallback(mimeType string, p document.Processor) error {
    if !p.CanProcess(mimeType) {
        return fmt.Errorf("fallback %T cannot handle %s", p, mimeType)
    }
    f.fallbacks[mimeType] = p
    return nil
}

func (f *ProcessorFactory) GetProcessor(mimeType string) (document.Processor, error) {
    processor, ok := f.processors[mimeType]
    if !ok {
        f.logger.Error("No processor found",
            logger.String("mimeType", mimeType),
        )
        return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
    }
    return processor, nil
}

// GetFallback returns the fallback processor for mimeType, if one is registered.
func (f *ProcessorFactory) GetFallback(mimeType string) (document.Processor, bool) {
    p, ok := f.fallbacks[mimeType]
    return p, ok
}

// Close closes every registered processor once.
func (f *ProcessorFactory) Close() error {
    seen := make(map[document.Processor]bool)
    var errs []error
    for _, group := range []map[string]document.Processor{f.processors, f.fallbacks} {
        for _, p := range group {
            if seen[p] {
                continue
            }
            seen[p] = true
            if err := p.Close(); err != nil {
                errs = append(errs, err)
            }
        }
    }
    return errors.Join(errs...)
}
