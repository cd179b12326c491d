package ports

import (
	"context"
	"io"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
)

// Request describes one API call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	// Body is JSON-encoded when non-nil.
	Body any
	// Header overrides the default headers.
	Header http.Header
}

// UploadRequest describes a multipart file upload.
type UploadRequest struct {
	Path      string
	FieldName string
	FileName  string
	File      io.Reader
	// Size is the file size used to compute fractional progress.
	Size   int64
	Fields map[string]string
	// Header overrides the default headers.
	Header http.Header
	// Progress is called as bytes are sent. It may be nil.
	Progress func(domain.UploadProgress)
}

// Gateway performs authenticated HTTP calls against the platform API.
//
//go:generate go run go.uber.org/mock/mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks
type Gateway interface {
	// Do performs req and decodes a JSON response into out when out is non-nil.
	// Non-2xx responses fail with *domain.APIError.
	Do(ctx context.Context, req Request, out any) error
	// Upload sends a file with progress reporting. Canceling ctx aborts it.
	Upload(ctx context.Context, req UploadRequest, out any) error
}

// AuthListener receives authentication expiry events from the gateway.
type AuthListener interface {
	OnAuthExpired(evt domain.AuthExpired)
}

// AuthListenerFunc adapts a function to AuthListener.
type AuthListenerFunc func(evt domain.AuthExpired)

// OnAuthExpired calls f.
func (f AuthListenerFunc) OnAuthExpired(evt domain.AuthExpired) {
	f(evt)
}
