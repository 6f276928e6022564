package schema

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-version"
)

// Entry binds a variant/version pair to the root [Node] of its model.
type Entry struct {
	Root    *Node
	Variant string
	Version string
}

// String returns the pair as "variant version".
func (e Entry) String() string {
	return e.Variant + " " + e.Version
}

type entryKey struct {
	variant string
	version string
}

// Registry maps variant/version pairs to schema roots. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	roots   map[entryKey]*Node
	entries []Entry
}

// NewRegistry returns a [*Registry] holding entries. It panics if a version
// is not a valid version number or a pair is registered twice.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{roots: make(map[entryKey]*Node, len(entries))}

	parsed := make(map[string]*version.Version, len(entries))

	for _, e := range entries {
		v, err := version.NewVersion(e.Version)
		if err != nil {
			panic(fmt.Sprintf("schema: registry entry %s: %v", e, err))
		}

		key := entryKey{variant: e.Variant, version: e.Version}
		if _, dup := r.roots[key]; dup {
			panic(fmt.Sprintf("schema: registry entry %s registered twice", e))
		}

		r.roots[key] = e.Root
		parsed[e.Version] = v
		r.entries = append(r.entries, e)
	}

	slices.SortFunc(r.entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Variant, b.Variant); c != 0 {
			return c
		}

		return parsed[a.Version].Compare(parsed[b.Version])
	})

	return r
}

// Entries returns the registered pairs, ordered by variant and then by
// ascending version.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Lookup returns the root node registered for variant and version. The
// version must match the registered literal exactly: "1.5" does not select
// "1.5.0".
func (r *Registry) Lookup(variant, ver string) (*Node, error) {
	if root, ok := r.roots[entryKey{variant: variant, version: ver}]; ok {
		return root, nil
	}

	uerr := &UnsupportedSchemaError{
		Variant:   variant,
		Version:   ver,
		Supported: r.supported(),
	}

	_, err := version.NewVersion(ver)
	if err != nil {
		uerr.Cause = err
	}

	return nil, uerr
}

func (r *Registry) supported() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.String())
	}

	return out
}
