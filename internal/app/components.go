package app

import (
	"context"

	"go.trai.ch/reel/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger

	closers []func(context.Context) error
}

// NewComponents creates a new Components struct. closers run in reverse
// order on Close.
func NewComponents(a *App, log ports.Logger, closers ...func(context.Context) error) *Components {
	return &Components{App: a, Logger: log, closers: closers}
}

// Close releases background resources such as the cache janitor and the
// trace exporter.
func (c *Components) Close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			c.Logger.Error(err)
		}
	}
}
