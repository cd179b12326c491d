// Package querycache holds server data keyed by domain.Key, collapses
// concurrent reads of the same key into one fetch, and applies the cache
// effects of writes.
package querycache

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Client is the process-wide query cache.
type Client struct {
	mu        sync.Mutex
	entries   *ttlcache.Cache[string, *entry]
	flights   map[string]*flight
	observers map[string][]subscriber
	gen       uint64

	staleTime time.Duration
	gcTime    time.Duration
	logger    ports.Logger

	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// maxJanitorInterval bounds how long expired entries linger before they are freed.
const maxJanitorInterval = time.Minute

// subscriber is the untyped side of an Observer.
type subscriber interface {
	changed()
	// source returns the fetcher used for refetches, or nil when the observer is disabled.
	source() (Fetcher, time.Duration)
}

// NewClient creates a Client and starts evicting unobserved entries after the GC window.
func NewClient(opts ...Option) *Client {
	c := &Client{
		flights:   make(map[string]*flight),
		observers: make(map[string][]subscriber),
		gcTime:    domain.DefaultGCTime,
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.entries = ttlcache.New(
		ttlcache.WithTTL[string, *entry](c.gcTime),
		ttlcache.WithDisableTouchOnHit[string, *entry](),
	)
	if c.gcTime > 0 {
		go c.janitor(min(c.gcTime, maxJanitorInterval))
	} else {
		close(c.stopped)
	}
	return c
}

// janitor frees expired entries until Close. Expired entries are already
// invisible to reads; this only releases their memory.
func (c *Client) janitor(interval time.Duration) {
	defer close(c.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.entries.DeleteExpired()
		case <-c.stop:
			return
		}
	}
}

// Close stops background eviction and waits for it to exit.
func (c *Client) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.stopped
}

// StaleTime returns the default staleness window.
func (c *Client) StaleTime() time.Duration {
	return c.staleTime
}

// GetData returns the cached value for key without fetching.
func GetData[T any](c *Client, key domain.Key) (T, bool) {
	var zero T

	c.mu.Lock()
	e := c.lookupLocked(key.String())
	c.mu.Unlock()

	if e == nil || !e.hasData {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// SetData stores v as fresh data for key, replacing any in-flight result.
func (c *Client) SetData(key domain.Key, v any) {
	c.mu.Lock()
	c.seedLocked(key, v)
	c.mu.Unlock()

	c.notify(key.String())
}

// State reports the lifecycle state of key.
func (c *Client) State(key domain.Key) EntryState {
	id := key.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.flights[id]; ok {
		return Fetching
	}
	e := c.lookupLocked(id)
	switch {
	case e == nil || !e.hasData:
		return Absent
	case e.fresh(time.Now()):
		return Fresh
	default:
		return Stale
	}
}

// Keys returns every cached key in a stable order.
func (c *Client) Keys() []domain.Key {
	c.mu.Lock()
	entries := c.liveEntriesLocked()
	c.mu.Unlock()

	keys := make([]domain.Key, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.key)
	}
	slices.SortFunc(keys, func(a, b domain.Key) int {
		return cmp.Compare(a.String(), b.String())
	})
	return keys
}

// Clear drops every entry and abandons every in-flight fetch.
func (c *Client) Clear() {
	c.mu.Lock()
	ids := make([]string, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	for id, f := range c.flights {
		f.discard = true
		delete(c.flights, id)
	}
	c.entries.DeleteAll()
	c.mu.Unlock()

	c.notify(ids...)
}

func (c *Client) lookupLocked(id string) *entry {
	item := c.entries.Get(id)
	if item == nil {
		return nil
	}
	return item.Value()
}

func (c *Client) liveEntriesLocked() []*entry {
	items := c.entries.Items()
	out := make([]*entry, 0, len(items))
	for _, item := range items {
		if !item.IsExpired() {
			out = append(out, item.Value())
		}
	}
	return out
}

// putLocked stores e, pinning it while observed.
func (c *Client) putLocked(id string, e *entry) {
	ttl := ttlcache.DefaultTTL
	if len(c.observers[id]) > 0 {
		ttl = ttlcache.NoTTL
	}
	c.entries.Set(id, e, ttl)
}

func (c *Client) storeLocked(key domain.Key, v any, staleTime time.Duration, invalidated bool) {
	id := key.String()
	e := c.lookupLocked(id)
	if e == nil {
		e = &entry{key: key}
	}

	c.gen++
	e.value = v
	e.hasData = true
	e.updatedAt = time.Now()
	e.staleTime = staleTime
	e.invalidated = invalidated
	e.err = nil
	e.fingerprint = fingerprint(v)
	e.gen = c.gen
	c.putLocked(id, e)
}

func (c *Client) storeErrorLocked(key domain.Key, err error) {
	id := key.String()
	e := c.lookupLocked(id)
	if e == nil {
		e = &entry{key: key, staleTime: c.staleTime}
	}
	e.err = err
	c.putLocked(id, e)
}

// seedLocked writes v as fresh data. A fetch already in flight for the key
// is detached so its older result cannot replace the seed.
func (c *Client) seedLocked(key domain.Key, v any) {
	id := key.String()
	if f, ok := c.flights[id]; ok {
		f.detached = true
		delete(c.flights, id)
	}
	c.storeLocked(key, v, c.staleTime, false)
}

// notify tells the observers of ids to recompute their state.
func (c *Client) notify(ids ...string) {
	c.mu.Lock()
	var subs []subscriber
	for _, id := range ids {
		subs = append(subs, c.observers[id]...)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s.changed()
	}
}

func (c *Client) subscribe(id string, s subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observers[id] = append(c.observers[id], s)
	if e := c.lookupLocked(id); e != nil {
		c.putLocked(id, e)
	}
}

// unsubscribe removes s; the GC window of the entry restarts when its last observer leaves.
func (c *Client) unsubscribe(id string, s subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := slices.DeleteFunc(c.observers[id], func(o subscriber) bool { return o == s })
	if len(subs) > 0 {
		c.observers[id] = subs
		return
	}
	delete(c.observers, id)
	if e := c.lookupLocked(id); e != nil {
		c.putLocked(id, e)
	}
}

func cast[T any](key domain.Key, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, zerr.With(zerr.Wrap(domain.ErrCacheTypeMismatch, ""), "key", key.String())
	}
	return t, nil
}
