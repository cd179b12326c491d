// Package gateway implements the single HTTP entry point to the platform API.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/reel/internal/adapters/telemetry"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Gateway = (*Client)(nil)

// errRetryable marks an attempt whose outcome may be retried.
var errRetryable = errors.New("retryable response")

// Client performs authenticated JSON requests against a base URL.
type Client struct {
	baseURL    string
	http       *http.Client
	tokens     ports.TokenStore
	logger     ports.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	timeout    time.Duration
	retryMax   int
	newBackOff func() backoff.BackOff
	now        func() time.Time

	mu        sync.RWMutex
	listeners []ports.AuthListener
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every attempt. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry sets how many extra attempts idempotent reads get and the backoff between them.
func WithRetry(maxRetries int, newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.retryMax = maxRetries
		if newBackOff != nil {
			c.newBackOff = newBackOff
		}
	}
}

// WithTracing sets the tracer and the propagator used for outgoing headers.
func WithTracing(tracer trace.Tracer, propagator propagation.TextMapPropagator) Option {
	return func(c *Client) {
		c.tracer = tracer
		c.propagator = propagator
	}
}

// WithClock replaces time.Now for expiry events.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a Client for baseURL. A trailing slash on baseURL is ignored.
func New(baseURL string, tokens ports.TokenStore, logger ports.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{},
		tokens:     tokens,
		logger:     logger,
		tracer:     otel.Tracer(telemetry.InstrumentationName),
		propagator: otel.GetTextMapPropagator(),
		timeout:    domain.DefaultRequestTimeout,
		retryMax:   domain.DefaultRetryMax,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AddAuthListener registers l to receive authentication expiry events.
func (c *Client) AddAuthListener(l ports.AuthListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Do performs req and decodes the JSON response into out.
//
// Only GET requests are retried, and only after transport errors, 429 or 5xx.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) (err error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := c.startSpan(ctx, method, req.Path)
	defer func() { telemetry.End(span, err) }()

	body, err := encodeBody(req.Body)
	if err != nil {
		return err
	}

	idempotent := method == http.MethodGet
	tries := uint(1)
	if idempotent && c.retryMax > 0 {
		tries += uint(c.retryMax)
	}

	var (
		res        response
		attemptErr error
	)
	_, retryErr := backoff.Retry(ctx, func() (struct{}, error) {
		res, attemptErr = c.attempt(ctx, method, req.Path, body, req.Header)
		if idempotent && retryable(ctx, res, attemptErr) {
			return struct{}{}, errRetryable
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(_ error, next time.Duration) {
			c.logger.Warn("retrying " + method + " " + req.Path + " in " + next.String())
		}),
	)
	if retryErr != nil && !errors.Is(retryErr, errRetryable) {
		return zerr.With(domain.Wrap(retryErr, domain.ErrAPIRequestFailed), "path", req.Path)
	}
	if attemptErr != nil {
		return attemptErr
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.status))
	return c.finish(method, req.Path, res, out)
}

func (c *Client) startSpan(ctx context.Context, method, path string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
}

// expire clears the token and tells every listener the session is over.
func (c *Client) expire(method, path string) {
	if err := c.tokens.Clear(); err != nil {
		c.logger.Error(err)
	}

	evt := domain.AuthExpired{Method: method, Path: path, At: c.now()}

	c.mu.RLock()
	listeners := append([]ports.AuthListener(nil), c.listeners...)
	c.mu.RUnlock()

	for _, l := range listeners {
		l.OnAuthExpired(evt)
	}
}

func retryable(ctx context.Context, res response, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return true
	}
	return res.status == http.StatusTooManyRequests || res.status >= http.StatusInternalServerError
}
