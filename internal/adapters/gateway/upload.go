package gateway

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/reel/internal/adapters/telemetry"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Upload streams a multipart/form-data body without buffering the file.
// Uploads are never retried and carry no per-attempt timeout; ctx is the
// only way to abort one.
func (c *Client) Upload(ctx context.Context, req ports.UploadRequest, out any) (err error) {
	ctx, span := c.startSpan(ctx, http.MethodPost, req.Path)
	defer func() { telemetry.End(span, err) }()

	pr, pw := io.Pipe()
	defer func() { _ = pr.Close() }()

	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(mw, req))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+req.Path, pr)
	if err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrUploadFailed), "path", req.Path)
	}
	if err := c.decorate(ctx, httpReq, req.Header); err != nil {
		return err
	}
	httpReq.Header.Set(headerContentType, mw.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ErrUploadCanceled
		}
		return zerr.With(domain.Wrap(err, domain.ErrUploadFailed), "path", req.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ErrUploadCanceled
		}
		return zerr.With(domain.Wrap(err, domain.ErrUploadFailed), "path", req.Path)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	return c.finish(http.MethodPost, req.Path, response{status: resp.StatusCode, body: data}, out)
}

func writeMultipart(mw *multipart.Writer, req ports.UploadRequest) error {
	for name, value := range req.Fields {
		if err := mw.WriteField(name, value); err != nil {
			return err
		}
	}

	field := req.FieldName
	if field == "" {
		field = "file"
	}
	part, err := mw.CreateFormFile(field, req.FileName)
	if err != nil {
		return err
	}

	src := &progressReader{r: req.File, total: req.Size, report: req.Progress}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	src.finish()

	return mw.Close()
}

// progressReader reports file bytes as the transport consumes them.
type progressReader struct {
	r      io.Reader
	sent   int64
	total  int64
	last   float64
	report func(domain.UploadProgress)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		var fraction float64
		if p.total > 0 {
			fraction = min(float64(p.sent)/float64(p.total), 1)
		}
		p.emit(fraction)
	}
	return n, err
}

// finish reports completion once the whole file has been read.
func (p *progressReader) finish() {
	if p.last < 1 {
		p.emit(1)
	}
}

func (p *progressReader) emit(fraction float64) {
	if p.report == nil {
		return
	}
	fraction = max(fraction, p.last)
	p.last = fraction
	total := max(p.total, p.sent)
	p.report(domain.UploadProgress{Sent: p.sent, Total: total, Fraction: fraction})
}
