package registry

import (
	"errors"
	"iter"
	"strings"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.trai.ch/zerr"
)

// Mode is what a mutation does to a dependent read.
type Mode int

const (
	// ModePassive declares that a mutation touches no cached read.
	ModePassive Mode = iota
	// ModeSeed writes the mutation result into the read.
	ModeSeed
	// ModeInvalidate marks the read and everything under it stale.
	ModeInvalidate
	// ModeRemove drops the read and everything under it.
	ModeRemove
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSeed:
		return "seed"
	case ModeInvalidate:
		return "invalidate"
	case ModeRemove:
		return "remove"
	default:
		return "passive"
	}
}

// Ref carries what a mutation knows about the record it wrote.
type Ref struct {
	// ID is the id of the written record.
	ID string
	// ParentID is the id of the owning record, e.g. the clip of a note.
	ParentID string
	// Result is the decoded response, used as the value of seeds.
	Result any
}

// KeyFunc derives a cache key from a mutation. A zero key means the
// dependency does not apply to this particular write.
type KeyFunc func(Ref) domain.Key

// Dependency says that a read depends on a set of mutations.
type Dependency struct {
	Mode Mode
	Key  KeyFunc
	On   []MutationKind
}

// Seeds declares a read whose value is the result of the mutations.
func Seeds(key KeyFunc, on ...MutationKind) Dependency {
	return Dependency{Mode: ModeSeed, Key: key, On: on}
}

// Invalidates declares a read that becomes stale after the mutations.
func Invalidates(key KeyFunc, on ...MutationKind) Dependency {
	return Dependency{Mode: ModeInvalidate, Key: key, On: on}
}

// Removes declares a read that no longer exists after the mutations.
func Removes(key KeyFunc, on ...MutationKind) Dependency {
	return Dependency{Mode: ModeRemove, Key: key, On: on}
}

// Passive declares mutations without cache effects.
func Passive(on ...MutationKind) Dependency {
	return Dependency{Mode: ModePassive, On: on}
}

// Fixed returns a KeyFunc that always yields key.
func Fixed(key domain.Key) KeyFunc {
	return func(Ref) domain.Key { return key }
}

// ByID returns a KeyFunc applying build to the written record's id.
func ByID(build func(id string) domain.Key) KeyFunc {
	return func(r Ref) domain.Key {
		if r.ID == "" {
			return domain.Key{}
		}
		return build(r.ID)
	}
}

// ByParent returns a KeyFunc applying build to the owning record's id.
func ByParent(build func(id string) domain.Key) KeyFunc {
	return func(r Ref) domain.Key {
		if r.ParentID == "" {
			return domain.Key{}
		}
		return build(r.ParentID)
	}
}

// Graph maps every mutation to the reads it affects.
type Graph struct {
	edges map[MutationKind][]Dependency
}

// NewGraph indexes deps by mutation. It fails when a dependency names an
// unknown mutation or when a known mutation is not declared at all.
func NewGraph(deps ...Dependency) (*Graph, error) {
	g := &Graph{edges: make(map[MutationKind][]Dependency)}

	for _, d := range deps {
		if d.Mode != ModePassive && d.Key == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrDependencyKeyMissing, ""), "mode", d.Mode.String())
		}
		for _, kind := range d.On {
			if !kind.Valid() {
				return nil, zerr.With(zerr.Wrap(domain.ErrUnknownMutation, ""), "mutation", int(kind))
			}
			if d.Mode == ModePassive {
				if _, ok := g.edges[kind]; !ok {
					g.edges[kind] = nil
				}
				continue
			}
			g.edges[kind] = append(g.edges[kind], d)
		}
	}

	var missing []string
	for _, kind := range AllMutations() {
		if _, ok := g.edges[kind]; !ok {
			missing = append(missing, kind.String())
		}
	}
	if len(missing) > 0 {
		names := strings.Join(missing, ", ")
		return nil, zerr.With(domain.Wrap(errors.New(names), domain.ErrUndeclaredMutation), "mutations", names)
	}

	return g, nil
}

// Effects resolves the cache changes of one successful mutation.
func (g *Graph) Effects(kind MutationKind, ref Ref) (querycache.Effects, error) {
	deps, ok := g.edges[kind]
	if !ok {
		return querycache.Effects{}, zerr.With(zerr.Wrap(domain.ErrUnknownMutation, ""), "mutation", kind.String())
	}

	var eff querycache.Effects
	for _, d := range deps {
		key := d.Key(ref)
		if key.IsZero() {
			continue
		}
		switch d.Mode {
		case ModeSeed:
			eff.Seed = append(eff.Seed, querycache.Seed{Key: key, Value: ref.Result})
		case ModeInvalidate:
			eff.Invalidate = append(eff.Invalidate, key)
		case ModeRemove:
			eff.Remove = append(eff.Remove, key)
		case ModePassive:
		}
	}
	return eff, nil
}

// Edge is one resolved dependency of a mutation, for display.
type Edge struct {
	Mode Mode
	Key  domain.Key
}

// Edges yields the dependencies of kind with placeholder ids, in declaration order.
// Passive mutations yield nothing.
func (g *Graph) Edges(kind MutationKind) iter.Seq[Edge] {
	ref := Ref{ID: "{id}", ParentID: "{parent}"}
	return func(yield func(Edge) bool) {
		for _, d := range g.edges[kind] {
			if !yield(Edge{Mode: d.Mode, Key: d.Key(ref)}) {
				return
			}
		}
	}
}
