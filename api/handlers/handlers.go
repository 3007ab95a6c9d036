package handlers

import (
	"github.com/feichai0017/resume-parser/internal/service/document"
	"github.com/feichai0017/resume-parser/pkg/converters"
	"github.com/feichai0017/resume-parser/pkg/logger"
)

type Handlers struct {
	Upload *UploadHandler
	Health *HealthHandler
}

func NewHandlers(
	parser document.Parser,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		Upload: NewUploadHandler(parser, converters.NewJSONConverter(), logger),
		Health: NewHealthHandler(),
	}
}
