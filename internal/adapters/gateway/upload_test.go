package gateway_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/adapters/gateway"
	"go.trai.ch/reel/internal/adapters/tokenstore"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
)

func TestUpload_SendsMultipartWithProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 256*1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clips/upload", r.URL.Path)
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		file, header, err := r.FormFile("video")
		if !assert.NoError(t, err) {
			return
		}
		defer func() { _ = file.Close() }()
		got, _ := io.ReadAll(file)
		assert.Equal(t, "intro.mp4", header.Filename)
		assert.Len(t, got, len(payload))
		assert.Equal(t, "Intro", r.FormValue("title"))

		_, _ = w.Write([]byte(`{"id":"c1","title":"Intro"}`))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, tokenstore.NewMemoryStore("abc123"), quietLogger(t))

	var reports []domain.UploadProgress
	var out domain.Clip
	err := c.Upload(context.Background(), ports.UploadRequest{
		Path:      "/clips/upload",
		FieldName: "video",
		FileName:  "intro.mp4",
		File:      bytes.NewReader(payload),
		Size:      int64(len(payload)),
		Fields:    map[string]string{"title": "Intro"},
		Progress:  func(p domain.UploadProgress) { reports = append(reports, p) },
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "c1", out.ID)

	require.NotEmpty(t, reports)
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i].Fraction, reports[i-1].Fraction)
		assert.GreaterOrEqual(t, reports[i].Sent, reports[i-1].Sent)
	}
	last := reports[len(reports)-1]
	assert.InDelta(t, 1.0, last.Fraction, 1e-9)
	assert.Equal(t, int64(len(payload)), last.Sent)
}

func TestUpload_UnknownSizeStillCompletes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, tokenstore.NewMemoryStore(""), quietLogger(t))

	var reports []domain.UploadProgress
	err := c.Upload(context.Background(), ports.UploadRequest{
		Path:     "/clips/upload",
		FileName: "a.txt",
		File:     strings.NewReader("hello"),
		Progress: func(p domain.UploadProgress) { reports = append(reports, p) },
	}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, reports)
	assert.InDelta(t, 1.0, reports[len(reports)-1].Fraction, 1e-9)
}

// cancelingReader cancels the upload once the transport starts reading the file.
type cancelingReader struct {
	cancel context.CancelFunc
	r      io.Reader
}

func (c *cancelingReader) Read(p []byte) (int, error) {
	c.cancel()
	return c.r.Read(p)
}

func TestUpload_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, tokenstore.NewMemoryStore(""), quietLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := c.Upload(ctx, ports.UploadRequest{
		Path:     "/clips/upload",
		FileName: "big.mp4",
		File:     &cancelingReader{cancel: cancel, r: bytes.NewReader(make([]byte, 8<<20))},
		Size:     8 << 20,
	}, nil)
	require.ErrorIs(t, err, domain.ErrUploadCanceled)
}

func TestUpload_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := tokenstore.NewMemoryStore("abc123")
	c := gateway.New(srv.URL, tokens, quietLogger(t))

	expired := 0
	c.AddAuthListener(ports.AuthListenerFunc(func(domain.AuthExpired) { expired++ }))

	err := c.Upload(context.Background(), ports.UploadRequest{
		Path:     "/clips/upload",
		FileName: "a.mp4",
		File:     strings.NewReader("data"),
	}, nil)
	require.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, 1, expired)

	token, _ := tokens.Token()
	assert.Empty(t, token)
}

func TestUpload_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := gateway.New(url, tokenstore.NewMemoryStore(""), quietLogger(t))

	err := c.Upload(context.Background(), ports.UploadRequest{
		Path:     "/clips/upload",
		FileName: "a.mp4",
		File:     strings.NewReader("data"),
	}, nil)
	require.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.ErrorContains(t, err, domain.ErrUploadFailed.Error())
	assert.NotErrorIs(t, err, domain.ErrUploadCanceled)
}
