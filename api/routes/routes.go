package routes

import (
    "github.com/gin-gonic/gin"

    "github.com/feichai0017/resume-parser/api/handlers"
    "github.com/feichai0017/resume-parser/api/middleware"
    "github.com/feichai0017/resume-parser/internal/utils/validator"
    "github.com/feichai0017/resume-parser/pkg/logger"
)

type Options struct {
    AllowedOrigins []string
    Validator      *validator.DocumentValidator
}

// SetupRoutes registers the global middleware chain and all routes.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, log logger.Logger, opts Options) {
    if opts.Validator == nil {
        opts.Validator = validator.NewDocumentValidator(nil)
    }

    r.Use(
        middleware.RequestID(),
        middleware.RequestLogger(log),
        middleware.Recovery(log),
        middleware.CORS(opts.AllowedOrigins),
        middleware.ErrorHandler(log),
    )

    r.GET("/health", h.Health.Check)

    api := r.Group("/api")
    upload := api.Group("/upload")
    {
        upload.POST("", middleware.ResumeUpload(opts.Validator, middleware.ResumeField), h.Upload.Upload)
        upload.GET("/supported-formats", h.Upload.SupportedFormats)
    }
}
