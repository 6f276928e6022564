// Package merge folds an ordered list of documents into one.
//
// Mappings are merged recursively; any other value (scalars, sequences, or
// a mapping meeting a non-mapping) replaces what was there before. Later
// documents win on every conflicting leaf. Sequences are never concatenated.
//
//	merged := merge.Merge(base, users, disks)
//
// Inputs are never modified: mapping nodes in the result are owned by the
// result, and non-mapping values are shared with the inputs, which is safe
// because [value.Value] trees are treated as immutable once decoded.
package merge

import (
	"go.jacobcolvin.com/bumerge/value"
)

// Merge folds docs left to right into a new mapping. A nil or [value.Null]
// document contributes nothing; any other non-mapping document is ignored as
// well, since only mappings carry keys.
func Merge(docs ...value.Value) *value.Mapping {
	acc := value.NewMapping()

	for _, doc := range docs {
		src, ok := doc.(*value.Mapping)
		if !ok {
			continue
		}

		Into(acc, src)
	}

	return acc
}

// Into merges src into dst. dst is modified in place; src is not.
// Mapping values present under the same key on both sides are merged
// recursively into a fresh mapping owned by dst.
func Into(dst, src *value.Mapping) {
	for k, incoming := range src.All() {
		in, inIsMap := incoming.(*value.Mapping)

		current, exists := dst.Get(k)
		cur, curIsMap := current.(*value.Mapping)

		switch {
		case inIsMap && exists && curIsMap:
			Into(cur, in)
		case inIsMap:
			// Copy so later merges into this key never reach src.
			fresh := value.NewMapping()
			Into(fresh, in)
			dst.Set(k, fresh)
		default:
			dst.Set(k, incoming)
		}
	}
}
