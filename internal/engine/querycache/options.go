package querycache

import (
	"time"

	"go.trai.ch/reel/internal/core/ports"
)

// StaleForever keeps data fresh until it is invalidated.
const StaleForever = time.Duration(1<<63 - 1)

// Option configures a Client.
type Option func(*Client)

// WithStaleTime sets the default staleness window. Zero makes data stale as soon as it is stored.
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

// WithGCTime sets how long unobserved entries are kept. Zero keeps them forever.
func WithGCTime(d time.Duration) Option {
	return func(c *Client) { c.gcTime = d }
}

// WithLogger reports failures of fetches nobody is waiting for.
func WithLogger(l ports.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// QueryOption configures a single read.
type QueryOption func(*queryOptions)

type queryOptions struct {
	staleTime       time.Duration
	enabled         bool
	refetchInterval time.Duration
}

// StaleTime overrides the client's staleness window for this read.
func StaleTime(d time.Duration) QueryOption {
	return func(o *queryOptions) { o.staleTime = d }
}

// Enabled gates the read. A disabled read never reaches the fetcher.
func Enabled(enabled bool) QueryOption {
	return func(o *queryOptions) { o.enabled = enabled }
}

// RefetchInterval makes an observer poll. It has no effect on one-shot reads.
func RefetchInterval(d time.Duration) QueryOption {
	return func(o *queryOptions) { o.refetchInterval = d }
}

func (c *Client) queryOptions(opts []QueryOption) queryOptions {
	o := queryOptions{staleTime: c.staleTime, enabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
