// Package apperror defines the errors that reach API clients. Every client
// facing failure renders as {"error": <label>, "message": <text>}.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error with an HTTP status and a client-safe body.
type Error struct {
	Status  int    `json:"-"`
	Label   string `json:"error"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Label, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Label, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Body returns the JSON body sent to the client.
func (e *Error) Body() Response {
	return Response{Error: e.Label, Message: e.Message}
}

// Response is the wire shape of every error.
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NoFile is returned when the request carries no usable résumé part.
func NoFile() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Label:   "No file uploaded",
		Message: "Please upload a resume file",
	}
}

// UnsupportedType is returned by the ingestion layer for a MIME type outside the allowlist.
func UnsupportedType(mimeType string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Label:   "Invalid file type",
		Message: "Invalid file type. Only PDF, DOCX, and TXT files are allowed.",
		Cause:   fmt.Errorf("declared mime type %q", mimeType),
	}
}

// FileTooLarge is returned by the ingestion layer when the upload exceeds the size cap.
func FileTooLarge(limitLabel string, cause error) *Error {
	return &Error{
		Status:  http.StatusRequestEntityTooLarge,
		Label:   "File too large",
		Message: fmt.Sprintf("File exceeds the maximum size of %s", limitLabel),
		Cause:   cause,
	}
}

// InvalidUpload is returned when the multipart body cannot be read.
func InvalidUpload(cause error) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Label:   "Invalid upload",
		Message: "The upload could not be read. Please try again.",
		Cause:   cause,
	}
}

// EmptyExtraction is returned when the parser ran but produced no usable text.
func EmptyExtraction() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Label:   "Document parsing failed",
		Message: "Could not extract text from the uploaded file. Please ensure the file contains readable text.",
	}
}

// Internal is the uniform body for every unexpected failure.
func Internal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Label:   "Internal Server Error",
		Message: "An unexpected error occurred while processing the request",
		Cause:   cause,
	}
}

// From returns err as an *Error, wrapping anything unknown as Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
