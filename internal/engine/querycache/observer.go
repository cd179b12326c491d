package querycache

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/reel/internal/core/domain"
)

// Status is the coarse state an observer reports.
type Status int

const (
	// StatusPending means no data has been loaded yet.
	StatusPending Status = iota
	// StatusError means the latest fetch failed. Earlier data is kept.
	StatusError
	// StatusSuccess means data is available.
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "pending"
	}
}

// State is what an observer of one key sees. HasData reports whether Data
// holds a loaded value; it stays true after a failed refetch.
type State[T any] struct {
	Status     Status
	Data       T
	HasData    bool
	Err        error
	IsFetching bool
	UpdatedAt  time.Time
}

// signature identifies a state for change detection.
type signature struct {
	status      Status
	fingerprint uint64
	err         string
}

// Observer keeps one key loaded for as long as it is open, and reports
// changes to it.
type Observer[T any] struct {
	c       *Client
	key     domain.Key
	id      string
	fn      Fetcher
	opts    queryOptions
	ctx     context.Context
	cancel  context.CancelFunc
	updates chan State[T]
	wg      sync.WaitGroup

	mu     sync.Mutex
	sig    signature
	primed bool
	closed bool
}

// Observe subscribes to key. Unless disabled, it loads the key when the
// cached data is not fresh and refetches whenever the key is invalidated.
// The observer stops when ctx ends or Close is called.
func Observe[T any](
	ctx context.Context, c *Client, key domain.Key, fn func(context.Context) (T, error), opts ...QueryOption,
) *Observer[T] {
	o := &Observer[T]{
		c:       c,
		key:     key,
		id:      key.String(),
		fn:      erase(fn),
		opts:    c.queryOptions(opts),
		updates: make(chan State[T], 1),
	}
	o.ctx, o.cancel = context.WithCancel(ctx)

	c.subscribe(o.id, o)
	o.changed()

	if o.opts.enabled {
		if c.State(key) != Fresh {
			o.spawn(false)
		}
		if o.opts.refetchInterval > 0 {
			o.wg.Add(1)
			go o.poll()
		}
	}

	go func() {
		<-o.ctx.Done()
		o.Close()
	}()
	return o
}

// Key returns the observed key.
func (o *Observer[T]) Key() domain.Key {
	return o.key
}

// Updates delivers the latest state whenever the data, status or error
// changes. Intermediate states may be skipped. The channel is closed by Close.
func (o *Observer[T]) Updates() <-chan State[T] {
	return o.updates
}

// State returns the current state.
func (o *Observer[T]) State() State[T] {
	st, _ := o.snapshot()
	return st
}

func (o *Observer[T]) snapshot() (State[T], signature) {
	var (
		value   any
		hasData bool
		fp      uint64
		st      State[T]
	)

	o.c.mu.Lock()
	if e := o.c.lookupLocked(o.id); e != nil {
		value, hasData, fp = e.value, e.hasData, e.fingerprint
		st.Err, st.UpdatedAt = e.err, e.updatedAt
	}
	_, st.IsFetching = o.c.flights[o.id]
	o.c.mu.Unlock()

	if hasData {
		if v, ok := value.(T); ok {
			st.Data, st.HasData = v, true
		}
	}
	switch {
	case st.Err != nil:
		st.Status = StatusError
	case hasData:
		st.Status = StatusSuccess
	default:
		st.Status = StatusPending
	}

	sig := signature{status: st.Status}
	if hasData {
		sig.fingerprint = fp
	}
	if st.Err != nil {
		sig.err = st.Err.Error()
	}
	return st, sig
}

// Refetch fetches the key now, even when cached data is fresh.
func (o *Observer[T]) Refetch(ctx context.Context) (T, error) {
	var zero T
	if !o.opts.enabled {
		return zero, domain.ErrQueryDisabled
	}
	v, err := o.c.fetch(ctx, o.key, o.fn, o.opts.staleTime, true)
	if err != nil {
		return zero, err
	}
	return cast[T](o.key, v)
}

// Close stops the observer. The entry's GC window starts when the last observer closes.
func (o *Observer[T]) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()

	o.cancel()
	o.wg.Wait()
	o.c.unsubscribe(o.id, o)

	o.mu.Lock()
	close(o.updates)
	o.mu.Unlock()
}

func (o *Observer[T]) spawn(force bool) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		_, _ = o.c.fetch(o.ctx, o.key, o.fn, o.opts.staleTime, force)
	}()
}

func (o *Observer[T]) poll() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.opts.refetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.ctx.Done():
			return
		case <-ticker.C:
			_, _ = o.c.fetch(o.ctx, o.key, o.fn, o.opts.staleTime, true)
		}
	}
}

func (o *Observer[T]) changed() {
	st, sig := o.snapshot()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || (o.primed && sig == o.sig) {
		return
	}
	o.primed = true
	o.sig = sig

	// Keep only the newest state in the buffer.
	select {
	case <-o.updates:
	default:
	}
	o.updates <- st
}

func (o *Observer[T]) source() (Fetcher, time.Duration) {
	if !o.opts.enabled {
		return nil, 0
	}
	return o.fn, o.opts.staleTime
}
