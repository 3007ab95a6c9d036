package middleware

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/resume-parser/pkg/apperror"
	"github.com/feichai0017/resume-parser/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error. Known client errors
// keep their status and body; everything else becomes a generic 500. Causes
// are logged, never sent.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.From(err)
		reqLog := logger.FromContext(c.Request.Context(), log).With(
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", appErr.Status),
		)
		if appErr.Status >= 500 {
			reqLog.Error("Request failed", logger.Error(err))
		} else {
			reqLog.Warn(appErr.Label, logger.Error(err))
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(appErr.Status, appErr.Body())
	}
}

// Recovery turns a panic into the uniform 500 body.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context(), log).Error("Panic recovered",
			logger.String("path", c.Request.URL.Path),
			logger.String("panic", fmt.Sprint(recovered)),
		)
		c.AbortWithStatusJSON(500, apperror.Internal(nil).Body())
	})
}
