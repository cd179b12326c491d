package querycache

import (
	"context"
	"time"

	"go.trai.ch/reel/internal/core/domain"
)

// Fetcher loads the value of one key.
type Fetcher func(ctx context.Context) (any, error)

// flight is one shared fetch. Fields other than done are guarded by Client.mu.
type flight struct {
	key       domain.Key
	done      chan struct{}
	val       any
	err       error
	cancel    context.CancelFunc
	waiters   int
	staleTime time.Duration
	startGen  uint64
	// detached flights are no longer joinable; their result is stored as stale.
	detached bool
	// discard drops the result entirely.
	discard bool
}

// Fetch returns the value for key, serving fresh cached data and otherwise
// joining or starting the single in-flight fetch for the key.
//
// The fetch is shared: it outlives any single caller and is canceled only
// once every caller waiting on it has gone away.
func Fetch[T any](
	ctx context.Context, c *Client, key domain.Key, fn func(context.Context) (T, error), opts ...QueryOption,
) (T, error) {
	var zero T

	o := c.queryOptions(opts)
	if !o.enabled {
		return zero, domain.ErrQueryDisabled
	}

	v, err := c.fetch(ctx, key, erase(fn), o.staleTime, false)
	if err != nil {
		return zero, err
	}
	return cast[T](key, v)
}

func erase[T any](fn func(context.Context) (T, error)) Fetcher {
	return func(ctx context.Context) (any, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// fetch serves fresh data unless force is set, then joins or starts a flight.
func (c *Client) fetch(ctx context.Context, key domain.Key, fn Fetcher, staleTime time.Duration, force bool) (any, error) {
	id := key.String()

	c.mu.Lock()
	if !force {
		if e := c.lookupLocked(id); e != nil && e.fresh(time.Now()) {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}
	}

	f, ok := c.flights[id]
	if !ok {
		f = c.startLocked(ctx, key, fn, staleTime)
	}
	f.waiters++
	c.mu.Unlock()

	if !ok {
		c.notify(id)
	}
	return c.wait(ctx, id, f)
}

// startLocked launches a flight whose context keeps ctx's values but not its cancellation.
func (c *Client) startLocked(ctx context.Context, key domain.Key, fn Fetcher, staleTime time.Duration) *flight {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &flight{
		key:       key,
		done:      make(chan struct{}),
		cancel:    cancel,
		staleTime: staleTime,
		startGen:  c.gen,
	}
	c.flights[key.String()] = f

	go c.run(fctx, f, fn)
	return f
}

func (c *Client) run(ctx context.Context, f *flight, fn Fetcher) {
	id := f.key.String()
	v, err := fn(ctx)

	c.mu.Lock()
	f.val, f.err = v, err
	if c.flights[id] == f {
		delete(c.flights, id)
	}
	background := f.waiters == 0

	switch {
	case f.discard:
		// Removed or abandoned.
	case f.detached:
		// Keep a late result only when nothing newer was written meanwhile.
		if e := c.lookupLocked(id); err == nil && (e == nil || e.gen <= f.startGen) {
			c.storeLocked(f.key, v, f.staleTime, true)
		}
	case err != nil:
		c.storeErrorLocked(f.key, err)
	default:
		c.storeLocked(f.key, v, f.staleTime, false)
	}
	discarded := f.discard
	c.mu.Unlock()

	close(f.done)
	f.cancel()

	if err != nil && background && !discarded && c.logger != nil {
		c.logger.Warn("background refresh of " + id + " failed: " + err.Error())
	}
	if !discarded {
		c.notify(id)
	}
}

// wait blocks until f completes or ctx ends. The last waiter to leave cancels f.
func (c *Client) wait(ctx context.Context, id string, f *flight) (any, error) {
	select {
	case <-f.done:
		c.mu.Lock()
		f.waiters--
		c.mu.Unlock()
		return f.val, f.err
	case <-ctx.Done():
	}

	c.mu.Lock()
	f.waiters--
	abandoned := false
	if f.waiters == 0 {
		select {
		case <-f.done:
		default:
			f.discard = true
			if c.flights[id] == f {
				delete(c.flights, id)
			}
			abandoned = true
		}
	}
	c.mu.Unlock()

	if abandoned {
		f.cancel()
		c.notify(id)
	}
	return nil, ctx.Err()
}
