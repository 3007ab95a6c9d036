package handlers

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/feichai0017/resume-parser/api/middleware"
    "github.com/feichai0017/resume-parser/internal/models"
    "github.com/feichai0017/resume-parser/internal/service/document"
    "github.com/feichai0017/resume-parser/pkg/apperror"
    "github.com/feichai0017/resume-parser/pkg/converters"
    "github.com/feichai0017/resume-parser/pkg/logger"
)

type UploadHandler struct {
    parser    document.Parser
    converter *converters.JSONConverter
    logger    logger.Logger
}

func NewUploadHandler(parser document.Parser, converter *converters.JSONConverter, log logger.Logger) *UploadHandler {
    if converter == nil {
        converter = converters.NewJSONConverter()
    }
    return &UploadHandler{
        parser:    parser,
        converter: converter,
        logger:    log,
    }
}

// Upload extracts text from the résumé accepted by the ingestion middleware.
// Every failure is handed to the error middleware for rendering.
func (h *UploadHandler) Upload(c *gin.Context) {
    file, ok := middleware.UploadedFile(c)
    if !ok {
        _ = c.Error(apperror.NoFile())
        return
    }

    log := logger.FromContext(c.Request.Context(), h.logger)
    log.Info("Processing file",
        logger.String("fileName", file.FileName),
        logger.String("mimeType", file.MimeType),
        logger.Int64("size", file.Size),
    )

    text, err := h.parser.ParseDocument(c.Request.Context(), file.Content, file.MimeType)
    if err != nil {
        _ = c.Error(err)
        return
    }

    if strings.TrimSpace(text) == "" {
        _ = c.Error(apperror.EmptyExtraction())
        return
    }

    result := h.converter.Convert(file, text)
    log.Info("Successfully parsed file",
        logger.String("fileName", result.FileName),
        logger.Int("textLength", result.TextLength),
    )

    c.JSON(http.StatusOK, h.converter.Envelope(result))
}

// SupportedFormats lists the accepted upload formats.
func (h *UploadHandler) SupportedFormats(c *gin.Context) {
    c.JSON(http.StatusOK, models.SupportedFormats())
}
