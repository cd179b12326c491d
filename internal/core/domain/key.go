package domain

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Key identifies a cached query result.
// Keys are ordered segment tuples and form a prefix tree: operations addressed
// to a key also apply to every key it is a prefix of.
type Key struct {
	parts []string
}

// NewKey creates a key from the given segments.
func NewKey(parts ...string) Key {
	return Key{parts: slices.Clone(parts)}
}

// Append returns a new key with the given segments added.
// The receiver is never modified.
func (k Key) Append(parts ...string) Key {
	out := make([]string, 0, len(k.parts)+len(parts))
	out = append(out, k.parts...)
	out = append(out, parts...)
	return Key{parts: out}
}

// Parts returns a copy of the key segments.
func (k Key) Parts() []string {
	return slices.Clone(k.parts)
}

// Len returns the number of segments.
func (k Key) Len() int {
	return len(k.parts)
}

// IsZero reports whether the key has no segments.
func (k Key) IsZero() bool {
	return len(k.parts) == 0
}

// Equal reports whether both keys have the same segments.
func (k Key) Equal(other Key) bool {
	return slices.Equal(k.parts, other.parts)
}

// HasPrefix reports whether prefix is a leading subsequence of k.
// Every key has the zero key as prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix.parts) > len(k.parts) {
		return false
	}
	return slices.Equal(k.parts[:len(prefix.parts)], prefix.parts)
}

// String returns an unambiguous representation of the key, e.g. ["courses","detail","42"].
// It doubles as the identity of the key inside the cache.
func (k Key) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range k.parts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(p))
	}
	b.WriteByte(']')
	return b.String()
}

// Filters parameterizes list queries.
type Filters map[string]string

// Encode returns the canonical form of the filters (keys sorted, URL-encoded).
// Equal filter sets always encode to the same segment.
func (f Filters) Encode() string {
	if len(f) == 0 {
		return ""
	}
	values := make(url.Values, len(f))
	for k, v := range f {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values.Encode()
}

// Query returns the filters as a URL query suffix, including the leading "?".
func (f Filters) Query() string {
	enc := f.Encode()
	if enc == "" {
		return ""
	}
	return "?" + enc
}
