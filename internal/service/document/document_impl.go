package document

import (
    "bytes"
    "context"
    "strings"
    "time"

    "github.com/feichai0017/resume-parser/internal/agent"
    "github.com/feichai0017/resume-parser/pkg/logger"
)

// Cache stores extracted text keyed by document content.
type Cache interface {
    Get(ctx context.Context, content []byte, mimeType string) (string, bool, error)
    Set(ctx context.Context, content []byte, mimeType string, text string) error
}

type DocumentService struct {
    processorFactory *agent.ProcessorFactory
    cache            Cache
    logger           logger.Logger
}

// NewService builds the extraction service. cache may be nil.
func NewService(factory *agent.ProcessorFactory, cache Cache, logger logger.Logger) *DocumentService {
    return &DocumentService{
        processorFactory: factory,
        cache:            cache,
        logger:           logger,
    }
}

// ParseDocument extracts the text of content. It consults the cache first,
// then the primary processor for mimeType, then the fallback processor if
// the primary produced only whitespace.
func (s *DocumentService) ParseDocument(ctx context.Context, content []byte, mimeType string) (string, error) {
    log := logger.FromContext(ctx, s.logger)

    if s.cache != nil {
        text, ok, err := s.cache.Get(ctx, content, mimeType)
        if err != nil {
            log.Warn("Extraction cache lookup failed", logger.Error(err))
        } else if ok {
            log.Debug("Extraction cache hit", logger.String("mimeType", mimeType))
            return text, nil
        }
    }

    processor, err := s.processorFactory.GetProcessor(mimeType)
    if err != nil {
        return "", &ExtractionError{MimeType: mimeType, Err: err}
    }

    start := time.Now()
    text, err := processor.Process(ctx, bytes.NewReader(content))
    if err != nil {
        return "", &ExtractionError{MimeType: mimeType, Err: err}
    }

    if strings.TrimSpace(text) == "" {
        text = s.tryFallback(ctx, log, content, mimeType, text)
    }

    log.Debug("Document extracted",
        logger.String("mimeType", mimeType),
        logger.Int("textLength", len(text)),
        logger.Duration("elapsed", time.Since(start)),
    )

    if s.cache != nil && strings.TrimSpace(text) != "" {
        if err := s.cache.Set(ctx, content, mimeType, text); err != nil {
            log.Warn("Extraction cache store failed", logger.Error(err))
        }
    }

    return text, nil
}

// tryFallback returns the fallback processor's text, or primary when there is
// no fallback or it fails.
func (s *DocumentService) tryFallback(ctx context.Context, log logger.Logger, content []byte, mimeType, primary string) string {
    fallback, ok := s.processorFactory.GetFallback(mimeType)
    if !ok {
        return primary
    }

    log.Info("No text layer found, trying OCR fallback", logger.String("mimeType", mimeType))
    text, err := fallback.Process(ctx, bytes.NewReader(content))
    if err != nil {
        log.Warn("OCR fallback failed", logger.Error(err))
        return primary
    }
    return text
}
