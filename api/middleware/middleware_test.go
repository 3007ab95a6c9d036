package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/resume-parser/internal/utils/validator"
	"github.com/feichai0017/resume-parser/pkg/apperror"
	"github.com/feichai0017/resume-parser/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		seen, _ = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, seen)
}

func TestRequestIDPropagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", serve(r, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	assert.Len(t, serve(r, req).Header().Get(RequestIDHeader), 36)
}

func TestRequestLogger(t *testing.T) {
	log := logger.NewTestLogger()
	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	serve(r, req)

	entries := log.GetEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "HTTP request", entries[0].Message)

	fields := map[string]bool{}
	for _, f := range entries[0].Fields {
		fields[f.Key] = true
		if f.Key == "request_id" {
			assert.Equal(t, "req-1", f.String)
		}
	}
	for _, key := range []string{"request_id", "method", "path", "status", "latency"} {
		assert.True(t, fields[key], "missing field %s", key)
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "client error keeps its status",
			err:        apperror.NoFile(),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"No file uploaded","message":"Please upload a resume file"}`,
		},
		{
			name:       "unknown error is generic",
			err:        errors.New("disk at /var/secret is full"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error","message":"An unexpected error occurred while processing the request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.NewTestLogger()
			r := gin.New()
			r.Use(ErrorHandler(log))
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Len(t, log.GetEntries(), 1)
		})
	}
}

func TestErrorHandlerLeavesWrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logger.NewTestLogger()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusAccepted, "done")
		_ = c.Error(errors.New("late"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "done", w.Body.String())
}

func TestRecovery(t *testing.T) {
	log := logger.NewTestLogger()
	r := gin.New()
	r.Use(Recovery(log))
	r.GET("/", func(c *gin.Context) { panic("nil map write") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "nil map")
	assert.Equal(t, []string{"Panic recovered"}, log.Messages("ERROR"))
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://any.example.com", want: "*"},
		{name: "listed origin", allowed: []string{"https://jobs.example.com"}, origin: "https://jobs.example.com", want: "https://jobs.example.com"},
		{name: "unlisted origin", allowed: []string{"https://jobs.example.com"}, origin: "https://evil.example.com", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowed))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := serve(r, req)

			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func uploadRouter(v *validator.DocumentValidator, seen *bool) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(logger.NewTestLogger()))
	r.POST("/upload", ResumeUpload(v, ResumeField), func(c *gin.Context) {
		_, *seen = UploadedFile(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestResumeUploadBodyOverCap(t *testing.T) {
	var seen bool
	v := validator.NewDocumentValidator(&validator.ValidatorConfig{
		MaxFileSize:  16,
		AllowedTypes: validator.DefaultConfig().AllowedTypes,
	})
	r := uploadRouter(v, &seen)

	body := "--b\r\n" +
		"Content-Disposition: form-data; name=\"resume\"; filename=\"a.txt\"\r\n" +
		"Content-Type: text/plain\r\n\r\n" +
		strings.Repeat("a", multipartOverhead+64) +
		"\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")

	w := serve(r, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "File too large")
	assert.False(t, seen)
}

func TestResumeUploadTruncatedBody(t *testing.T) {
	var seen bool
	r := uploadRouter(validator.NewDocumentValidator(nil), &seen)

	body := "--b\r\n" +
		"Content-Disposition: form-data; name=\"resume\"; filename=\"a.txt\"\r\n" +
		"Content-Type: text/plain\r\n\r\n" +
		"unterminated"
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")

	w := serve(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid upload")
	assert.False(t, seen)
}

func TestResumeUploadStoresFile(t *testing.T) {
	var got bool
	r := gin.New()
	r.POST("/upload", ResumeUpload(validator.NewDocumentValidator(nil), ResumeField), func(c *gin.Context) {
		file, ok := UploadedFile(c)
		got = ok
		if assert.True(t, ok) {
			assert.Equal(t, "cv.txt", file.FileName)
			assert.Equal(t, "text/plain", file.MimeType)
			assert.Equal(t, []byte("Hello"), file.Content)
			assert.Equal(t, int64(5), file.Size)
		}
		c.Status(http.StatusNoContent)
	})

	body := "--b\r\n" +
		"Content-Disposition: form-data; name=\"resume\"; filename=\"cv.txt\"\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n\r\n" +
		"Hello\r\n--b--\r\n"
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")

	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, got)
}
