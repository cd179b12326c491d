package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
)

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, domain.Wrap(err, domain.ErrRequestEncodeFailed)
	}
	return data, nil
}

// attempt sends one request and reads the whole body before the attempt deadline ends.
func (c *Client) attempt(
	ctx context.Context, method, path string, body []byte, header http.Header,
) (response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var r io.Reader = http.NoBody
	if body != nil {
		r = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return response{}, zerr.With(domain.Wrap(err, domain.ErrAPIRequestFailed), "path", path)
	}
	httpReq.Header.Set(headerContentType, contentTypeJSON)
	if err := c.decorate(ctx, httpReq, header); err != nil {
		return response{}, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return response{}, zerr.With(domain.Wrap(err, domain.ErrAPIRequestFailed), "path", path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, zerr.With(domain.Wrap(err, domain.ErrAPIRequestFailed), "path", path)
	}
	return response{status: resp.StatusCode, body: data}, nil
}

// decorate applies caller headers over the defaults, then identity headers.
func (c *Client) decorate(ctx context.Context, req *http.Request, header http.Header) error {
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	if req.Header.Get(headerRequestID) == "" {
		req.Header.Set(headerRequestID, uuid.NewString())
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	return nil
}

// finish turns a response into a decoded value or an APIError.
func (c *Client) finish(method, path string, res response, out any) error {
	if res.status >= 200 && res.status < 300 {
		if out == nil || res.status == http.StatusNoContent || len(bytes.TrimSpace(res.body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(res.body, out); err != nil {
			return zerr.With(domain.Wrap(err, domain.ErrAPIParseFailed), "path", path)
		}
		return nil
	}

	apiErr := &domain.APIError{
		Status:  res.status,
		Method:  method,
		Path:    path,
		Message: errorMessage(res.body),
	}
	if res.status == http.StatusUnauthorized {
		c.expire(method, path)
	}
	return apiErr
}

// errorMessage extracts a server-provided message from an error body, if any.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
