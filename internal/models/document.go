package models

// MIME types accepted by the upload endpoint.
const (
    MimeTypePDF  = "application/pdf"
    MimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
    MimeTypeText = "text/plain"
)

// MaxFileSize is the upload cap in bytes (10MB).
const MaxFileSize int64 = 10 * 1024 * 1024

// MaxFileSizeLabel is MaxFileSize as shown to clients.
const MaxFileSizeLabel = "10MB"

// UploadedFile is a single résumé file received with a request. It lives only
// for the duration of that request.
type UploadedFile struct {
    FileName string
    MimeType string
    Size     int64
    Content  []byte
}

// ParseResult is the extracted text of an UploadedFile plus derived metrics.
type ParseResult struct {
    FileName   string `json:"fileName"`
    FileType   string `json:"fileType"`
    Text       string `json:"text"`
    TextLength int    `json:"textLength"`
    WordCount  int    `json:"wordCount"`
}

// FormatDescriptor describes one supported upload format.
type FormatDescriptor struct {
    Extension   string `json:"extension"`
    MimeType    string `json:"mimeType"`
    Description string `json:"description"`
}

// FormatCatalog is the body of the supported-formats endpoint.
type FormatCatalog struct {
    SupportedFormats []FormatDescriptor `json:"supportedFormats"`
    MaxFileSize      string             `json:"maxFileSize"`
}

var supportedFormats = [...]FormatDescriptor{
    {Extension: ".pdf", MimeType: MimeTypePDF, Description: "Portable Document Format"},
    {Extension: ".docx", MimeType: MimeTypeDOCX, Description: "Microsoft Word Document"},
    {Extension: ".txt", MimeType: MimeTypeText, Description: "Plain Text File"},
}

// SupportedFormats returns a fresh copy of the format catalog so callers
// can never mutate the process-wide list.
func SupportedFormats() FormatCatalog {
    formats := make([]FormatDescriptor, len(supportedFormats))
    copy(formats, supportedFormats[:])
    return FormatCatalog{
        SupportedFormats: formats,
        MaxFileSize:      MaxFileSizeLabel,
    }
}

// IsSupportedMimeType reports whether mimeType is one of the accepted types.
func IsSupportedMimeType(mimeType string) bool {
    for _, f := range supportedFormats {
        if f.MimeType == mimeType {
            return true
        }
    }
    return false
}
