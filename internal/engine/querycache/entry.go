package querycache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/reel/internal/core/domain"
)

// EntryState is the lifecycle state of a cache key.
type EntryState int

const (
	// Absent means no data is cached for the key.
	Absent EntryState = iota
	// Fetching means a fetch for the key is in flight.
	Fetching
	// Fresh means cached data may be served without a network call.
	Fresh
	// Stale means cached data exists but the next read refetches.
	Stale
)

func (s EntryState) String() string {
	switch s {
	case Absent:
		return "absent"
	case Fetching:
		return "fetching"
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return fmt.Sprintf("EntryState(%d)", int(s))
	}
}

// entry is the cached result for one key. It is only touched under Client.mu.
type entry struct {
	key         domain.Key
	value       any
	hasData     bool
	updatedAt   time.Time
	staleTime   time.Duration
	invalidated bool
	err         error
	fingerprint uint64
	// gen orders writes so a detached fetch never overwrites newer data.
	gen uint64
}

func (e *entry) fresh(now time.Time) bool {
	return e.hasData && !e.invalidated && now.Sub(e.updatedAt) < e.staleTime
}

// fingerprint hashes the JSON form of v so observers can skip identical results.
func fingerprint(v any) uint64 {
	data, err := json.Marshal(v)
	if err != nil {
		return xxhash.Sum64String(fmt.Sprintf("%#v", v))
	}
	return xxhash.Sum64(data)
}
