package schema

import (
	"fmt"
	"regexp"
	"slices"
)

// Kind is the kind of value a [Field] accepts.
type Kind int

// Field kinds.
const (
	// KindString accepts string scalars, optionally restricted to a literal
	// set or a pattern.
	KindString Kind = iota
	// KindInteger accepts integers only. Floats and booleans are rejected
	// even when they hold an integral value.
	KindInteger
	// KindBoolean accepts booleans only.
	KindBoolean
	// KindUUID accepts strings in canonical 8-4-4-4-12 hex form.
	KindUUID
	// KindList accepts sequences whose elements match [Field.Items].
	KindList
	// KindObject accepts mappings that match [Field.Object].
	KindObject
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindUUID:
		return "uuid"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field describes one named field of a [Node].
//
// Create instances with [String], [Integer], [Bool], [UUID], [Object],
// [List], [Strings] or [Objects].
type Field struct {
	// Items describes list elements. Set for [KindList] only.
	Items *Field
	// Object is the nested node. Set for [KindObject] only.
	Object *Node
	// Pattern, if set, must match string values.
	Pattern *regexp.Regexp
	// MinItems is the smallest accepted list length. Zero means no limit.
	MinItems int
	// Name is the mapping key.
	Name string
	// Description is free text, used in exported schemas.
	Description string
	// Enum, if non-empty, lists the accepted string values.
	Enum []string
	Kind Kind
	// Required fields must be present and non-null.
	Required bool
}

// FieldOption configures a [Field].
type FieldOption func(*Field)

// Required marks the field as required.
func Required() FieldOption {
	return func(f *Field) {
		f.Required = true
	}
}

// OneOf restricts a string field to the given literals.
func OneOf(values ...string) FieldOption {
	return func(f *Field) {
		f.Enum = slices.Clone(values)
	}
}

// Matches restricts a string field to values matching pattern. The pattern
// must compile; it is compiled once when the schema is built.
func Matches(pattern string) FieldOption {
	re := regexp.MustCompile(pattern)

	return func(f *Field) {
		f.Pattern = re
	}
}

// MinItems sets the minimum length of a list field.
func MinItems(n int) FieldOption {
	return func(f *Field) {
		f.MinItems = n
	}
}

// Describe sets the field description.
func Describe(text string) FieldOption {
	return func(f *Field) {
		f.Description = text
	}
}

func newField(name string, kind Kind, opts []FieldOption) Field {
	f := Field{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&f)
	}

	return f
}

// String returns a string field.
func String(name string, opts ...FieldOption) Field {
	return newField(name, KindString, opts)
}

// Integer returns a strict integer field.
func Integer(name string, opts ...FieldOption) Field {
	return newField(name, KindInteger, opts)
}

// Bool returns a boolean field.
func Bool(name string, opts ...FieldOption) Field {
	return newField(name, KindBoolean, opts)
}

// UUID returns a UUID field.
func UUID(name string, opts ...FieldOption) Field {
	return newField(name, KindUUID, opts)
}

// Object returns a field holding one instance of node.
func Object(name string, node *Node, opts ...FieldOption) Field {
	f := newField(name, KindObject, opts)
	f.Object = node

	return f
}

// List returns a field holding a list whose elements match item. The name of
// item is ignored.
func List(name string, item Field, opts ...FieldOption) Field {
	f := newField(name, KindList, opts)
	item.Name = ""
	item.Required = false
	f.Items = &item

	return f
}

// Strings returns a field holding a list of strings.
func Strings(name string, opts ...FieldOption) Field {
	return List(name, String(""), opts...)
}

// Objects returns a field holding a list of node instances.
func Objects(name string, node *Node, opts ...FieldOption) Field {
	return List(name, Object("", node), opts...)
}
