package middleware

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feichai0017/resume-parser/internal/models"
	"github.com/feichai0017/resume-parser/internal/utils/validator"
	"github.com/feichai0017/resume-parser/pkg/apperror"
)

const (
	// ResumeField is the multipart field carrying the résumé.
	ResumeField = "resume"

	uploadedFileKey = "uploadedFile"

	// multipartOverhead is headroom for boundaries and part headers on top
	// of the file size cap.
	multipartOverhead = 1 << 20

	// formMemory keeps an accepted upload entirely in memory.
	formMemory = 32 << 20
)

// ResumeUpload is the ingestion layer for résumé uploads. It reads the single
// file part named field, screens it against the policy and stores it for the
// handler. A request without exactly one such part passes through with no
// file; rejected files never reach the handler.
func ResumeUpload(v *validator.DocumentValidator, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, v.MaxFileSize()+multipartOverhead)

		if err := c.Request.ParseMultipartForm(formMemory); err != nil {
			switch {
			case isBodyTooLarge(err):
				rejectUpload(c, apperror.FileTooLarge(models.MaxFileSizeLabel, err))
			case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
				c.Next()
			default:
				rejectUpload(c, apperror.InvalidUpload(err))
			}
			return
		}
		defer c.Request.MultipartForm.RemoveAll()

		headers := c.Request.MultipartForm.File[field]
		if len(headers) != 1 {
			c.Next()
			return
		}
		header := headers[0]

		verdict := v.Screen(header.Filename, header.Header.Get("Content-Type"), header.Size)
		if !verdict.Accepted() {
			rejectUpload(c, rejectionError(verdict))
			return
		}

		content, err := readPart(header)
		if err != nil {
			rejectUpload(c, apperror.InvalidUpload(err))
			return
		}

		c.Set(uploadedFileKey, &models.UploadedFile{
			FileName: header.Filename,
			MimeType: verdict.FileInfo.MimeType,
			Size:     int64(len(content)),
			Content:  content,
		})
		c.Next()
	}
}

// UploadedFile returns the file accepted by ResumeUpload, if any.
func UploadedFile(c *gin.Context) (*models.UploadedFile, bool) {
	v, ok := c.Get(uploadedFileKey)
	if !ok {
		return nil, false
	}
	file, ok := v.(*models.UploadedFile)
	return file, ok && file != nil
}

func rejectUpload(c *gin.Context, err *apperror.Error) {
	_ = c.Error(err)
	c.Abort()
}

func rejectionError(verdict validator.Verdict) *apperror.Error {
	switch verdict.Rejection.Code {
	case validator.CodeFileTooLarge:
		return apperror.FileTooLarge(models.MaxFileSizeLabel, verdict.Rejection)
	default:
		return apperror.UnsupportedType(verdict.FileInfo.MimeType)
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return content, nil
}
