package querycache

import (
	"context"

	"go.trai.ch/reel/internal/core/domain"
)

// Seed is a value written straight into the cache.
type Seed struct {
	Key   domain.Key
	Value any
}

// Effects are the cache changes caused by one successful write.
type Effects struct {
	Remove     []domain.Key
	Seed       []Seed
	Invalidate []domain.Key
}

// IsZero reports whether e changes nothing.
func (e Effects) IsZero() bool {
	return len(e.Remove) == 0 && len(e.Seed) == 0 && len(e.Invalidate) == 0
}

// Invalidate marks every entry under prefix stale and returns how many were marked.
// Observed entries start refetching before Invalidate returns.
func (c *Client) Invalidate(prefix domain.Key) int {
	return c.Apply(Effects{Invalidate: []domain.Key{prefix}})
}

// Remove deletes every entry under prefix and returns how many were deleted.
// Results of fetches still in flight for those keys are dropped.
func (c *Client) Remove(prefix domain.Key) int {
	return c.Apply(Effects{Remove: []domain.Key{prefix}})
}

// Apply performs removals, then seeds, then invalidations as one atomic
// step, so no read observes a partial application. It returns the number of
// entries affected.
func (c *Client) Apply(eff Effects) int {
	touched := make(map[string]struct{})

	c.mu.Lock()
	n := 0
	for _, prefix := range eff.Remove {
		n += c.removeLocked(prefix, touched)
	}
	for _, s := range eff.Seed {
		c.seedLocked(s.Key, s.Value)
		touched[s.Key.String()] = struct{}{}
		n++
	}
	for _, prefix := range eff.Invalidate {
		n += c.invalidateLocked(prefix, touched)
	}
	c.mu.Unlock()

	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	c.notify(ids...)
	return n
}

func (c *Client) removeLocked(prefix domain.Key, touched map[string]struct{}) int {
	n := 0
	for _, e := range c.liveEntriesLocked() {
		if e.key.HasPrefix(prefix) {
			id := e.key.String()
			c.entries.Delete(id)
			touched[id] = struct{}{}
			n++
		}
	}
	for id, f := range c.flights {
		if f.key.HasPrefix(prefix) {
			f.discard = true
			delete(c.flights, id)
			touched[id] = struct{}{}
		}
	}
	return n
}

func (c *Client) invalidateLocked(prefix domain.Key, touched map[string]struct{}) int {
	n := 0
	refetch := make(map[string]domain.Key)

	for _, e := range c.liveEntriesLocked() {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		id := e.key.String()
		e.invalidated = true
		touched[id] = struct{}{}
		refetch[id] = e.key
		n++
	}
	for id, f := range c.flights {
		if f.key.HasPrefix(prefix) {
			f.detached = true
			delete(c.flights, id)
			touched[id] = struct{}{}
			refetch[id] = f.key
		}
	}

	for id, key := range refetch {
		if _, running := c.flights[id]; running {
			continue
		}
		for _, s := range c.observers[id] {
			if fn, staleTime := s.source(); fn != nil {
				c.startLocked(context.Background(), key, fn, staleTime)
				break
			}
		}
	}
	return n
}
