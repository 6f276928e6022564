package value

import (
	"fmt"
	"iter"
	"slices"
)

// Kind identifies the variant held by a [Value].
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns the human-readable name of the kind, as used in error
// messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a node of a loaded document. The set of implementations is
// closed: [Null], [Bool], [Int], [Float], [String], [Sequence] and
// [*Mapping].
type Value interface {
	Kind() Kind
	value()
}

type (
	// Null is the absence of a value.
	Null struct{}
	// Bool is a boolean scalar.
	Bool bool
	// Int is an integer scalar.
	Int int64
	// Float is a floating-point scalar.
	Float float64
	// String is a string scalar.
	String string
	// Sequence is an ordered list of values.
	Sequence []Value
)

// Kind implements [Value].
func (Null) Kind() Kind { return KindNull }

// Kind implements [Value].
func (Bool) Kind() Kind { return KindBool }

// Kind implements [Value].
func (Int) Kind() Kind { return KindInt }

// Kind implements [Value].
func (Float) Kind() Kind { return KindFloat }

// Kind implements [Value].
func (String) Kind() Kind { return KindString }

// Kind implements [Value].
func (Sequence) Kind() Kind { return KindSequence }

func (Null) value()     {}
func (Bool) value()     {}
func (Int) value()      {}
func (Float) value()    {}
func (String) value()   {}
func (Sequence) value() {}

// Mapping is a string-keyed map that remembers insertion order.
//
// Create instances with [NewMapping]. The zero value is not usable.
type Mapping struct {
	values map[string]Value
	keys   []string
}

// NewMapping returns an empty [*Mapping].
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Kind implements [Value].
func (*Mapping) Kind() Kind { return KindMapping }

func (*Mapping) value() {}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.values[key]

	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]

	return ok
}

// Set stores v under key. A new key is appended after the existing keys; an
// existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Delete removes key, if present.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)

	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// MoveToFront reorders the mapping so that the given keys come first, in the
// given order. Keys that are not present are ignored.
func (m *Mapping) MoveToFront(keys ...string) {
	front := make([]string, 0, len(keys))

	for _, k := range keys {
		if m.Has(k) && !slices.Contains(front, k) {
			front = append(front, k)
		}
	}

	rest := slices.DeleteFunc(slices.Clone(m.keys), func(k string) bool {
		return slices.Contains(front, k)
	})

	m.keys = append(front, rest...)
}

// Keys returns a copy of the keys in insertion order.
func (m *Mapping) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates over the key/value pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of v. Scalars are returned as is.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Mapping:
		out := NewMapping()
		for k, child := range t.All() {
			out.Set(k, Clone(child))
		}

		return out

	case Sequence:
		out := make(Sequence, len(t))
		for i, child := range t {
			out[i] = Clone(child)
		}

		return out
	}

	return v
}

// Equal reports whether a and b hold the same data. Mapping key order is
// significant.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch ta := a.(type) {
	case *Mapping:
		tb, _ := b.(*Mapping)
		if !slices.Equal(ta.keys, tb.keys) {
			return false
		}

		for _, k := range ta.keys {
			if !Equal(ta.values[k], tb.values[k]) {
				return false
			}
		}

		return true

	case Sequence:
		tb, _ := b.(Sequence)

		return slices.EqualFunc(ta, tb, Equal)

	case Null:
		return true

	case Bool, Int, Float, String:
		return a == b
	}

	return false
}

// ToAny converts v into plain Go values: map[string]any, []any, string,
// int64, float64, bool and nil.
func ToAny(v Value) any {
	switch t := v.(type) {
	case *Mapping:
		out := make(map[string]any, t.Len())
		for k, child := range t.All() {
			out[k] = ToAny(child)
		}

		return out

	case Sequence:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = ToAny(child)
		}

		return out

	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	}

	return nil
}
