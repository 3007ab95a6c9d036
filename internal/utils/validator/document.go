// internal/utils/validator/document.go
package validator

import (
    "fmt"
    "mime"
    "path/filepath"
    "strings"

    "github.com/feichai0017/resume-parser/internal/models"
)

// Rejection codes
const (
    CodeInvalidFileType = "INVALID_FILE_TYPE"
    CodeFileTooLarge    = "FILE_TOO_LARGE"
)

// ValidatorConfig holds the upload policy.
type ValidatorConfig struct {
    MaxFileSize  int64           // bytes, inclusive
    AllowedTypes map[string]bool // declared MIME types
}

// DefaultConfig is the résumé upload policy: PDF, DOCX or plain text up to 10MB.
func DefaultConfig() *ValidatorConfig {
    return &ValidatorConfig{
        MaxFileSize: models.MaxFileSize,
        AllowedTypes: map[string]bool{
            models.MimeTypePDF:  true,
            models.MimeTypeDOCX: true,
            models.MimeTypeText: true,
        },
    }
}

// FileInfo is what the policy looks at. The content itself is never inspected.
type FileInfo struct {
    Filename  string `json:"filename"`
    Size      int64  `json:"size"`
    MimeType  string `json:"mimeType"`
    Extension string `json:"extension"`
}

// ValidationError is the reason a file was rejected.
type ValidationError struct {
    Code    string `json:"code"`
    Message string `json:"message"`
    Field   string `json:"field,omitempty"`
}

func (e ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Verdict is the outcome of screening a file: either accepted, or rejected
// with exactly one reason.
type Verdict struct {
    FileInfo  FileInfo
    Rejection *ValidationError
}

// Accepted reports whether the file passed every check.
func (v Verdict) Accepted() bool {
    return v.Rejection == nil
}

// DocumentValidator applies the upload policy.
type DocumentValidator struct {
    config *ValidatorConfig
}

// NewDocumentValidator creates a validator; a nil config means DefaultConfig.
func NewDocumentValidator(config *ValidatorConfig) *DocumentValidator {
    if config == nil {
        config = DefaultConfig()
    }
    return &DocumentValidator{config: config}
}

// MaxFileSize returns the inclusive size cap in bytes.
func (v *DocumentValidator) MaxFileSize() int64 {
    return v.config.MaxFileSize
}

// Screen checks the declared MIME type first, then the size. It is a pure
// function of its inputs.
func (v *DocumentValidator) Screen(filename, declaredType string, size int64) Verdict {
    info := FileInfo{
        Filename:  filename,
        Size:      size,
        MimeType:  NormalizeMimeType(declaredType),
        Extension: strings.ToLower(filepath.Ext(filename)),
    }

    if !v.config.AllowedTypes[info.MimeType] {
        return Verdict{FileInfo: info, Rejection: &ValidationError{
            Code:    CodeInvalidFileType,
            Message: fmt.Sprintf("MIME type %q is not allowed", info.MimeType),
            Field:   "mimeType",
        }}
    }

    if info.Size > v.config.MaxFileSize {
        return Verdict{FileInfo: info, Rejection: &ValidationError{
            Code:    CodeFileTooLarge,
            Message: fmt.Sprintf("File size %d exceeds maximum limit of %d bytes", info.Size, v.config.MaxFileSize),
            Field:   "size",
        }}
    }

    return Verdict{FileInfo: info}
}

// NormalizeMimeType lower-cases a Content-Type value and drops its parameters,
// so "Text/Plain; charset=utf-8" becomes "text/plain".
func NormalizeMimeType(contentType string) string {
    contentType = strings.TrimSpace(contentType)
    if contentType == "" {
        return ""
    }
    mediaType, _, err := mime.ParseMediaType(contentType)
    if err != nil {
        if i := strings.IndexByte(contentType, ';'); i >= 0 {
            contentType = contentType[:i]
        }
        return strings.ToLower(strings.TrimSpace(contentType))
    }
    return mediaType
}
