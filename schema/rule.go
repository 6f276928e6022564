package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.jacobcolvin.com/bumerge/value"
)

// Errors returned by the built-in rules.
var (
	ErrConflict   = errors.New("conflicting fields")
	ErrDependency = errors.New("missing dependency")
)

// Rule is a predicate over the sibling fields of one object instance. Rules
// run after every field of the instance has been validated and see only
// fields that are set (present and non-null).
type Rule interface {
	// Check returns a non-nil error when obj violates the rule.
	Check(obj *value.Mapping) error
	// Fields lists the fields the rule inspects.
	Fields() []string
	// String describes the rule.
	String() string
}

// MutuallyExclusive allows at most one of the named fields to be set.
type MutuallyExclusive []string

// Check implements [Rule].
func (r MutuallyExclusive) Check(obj *value.Mapping) error {
	var set []string

	for _, name := range r {
		if obj.Has(name) {
			set = append(set, name)
		}
	}

	if len(set) > 1 {
		return fmt.Errorf("%w: only one of %s may be set, found %s",
			ErrConflict, strings.Join(r, ", "), strings.Join(set, " and "))
	}

	return nil
}

// Fields implements [Rule].
func (r MutuallyExclusive) Fields() []string { return r }

func (r MutuallyExclusive) String() string {
	return "at most one of " + strings.Join(r, ", ")
}

// Requires demands that Dependency is set whenever Field is set. A boolean
// Field set to false does not trigger the rule, and neither does an instance
// where a sibling named in Exempt holds the given string.
type Requires struct {
	Exempt     map[string]string
	Field      string
	Dependency string
}

// Check implements [Rule].
func (r Requires) Check(obj *value.Mapping) error {
	v, ok := obj.Get(r.Field)
	if !ok || v == value.Value(value.Bool(false)) {
		return nil
	}

	for name, want := range r.Exempt {
		if got, ok := obj.Get(name); ok && got == value.Value(value.String(want)) {
			return nil
		}
	}

	if !obj.Has(r.Dependency) {
		return fmt.Errorf("%w: %s requires %s to be set", ErrDependency, r.Field, r.Dependency)
	}

	return nil
}

// Fields implements [Rule].
func (r Requires) Fields() []string {
	return append([]string{r.Field, r.Dependency}, slices.Sorted(maps.Keys(r.Exempt))...)
}

func (r Requires) String() string {
	return r.Field + " requires " + r.Dependency
}
