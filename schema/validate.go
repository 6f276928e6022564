package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"go.jacobcolvin.com/bumerge/value"
)

// Identity field names. Their values select the [Node] that governs a
// document.
const (
	FieldVariant = "variant"
	FieldVersion = "version"
)

const canonicalUUIDLen = 36

// Document is a validated configuration. Root holds only the fields that
// were set in the input, with the identity fields first.
type Document struct {
	Root    *value.Mapping
	Variant string
	Version string
}

// Encode renders the document as YAML.
func (d *Document) Encode() ([]byte, error) {
	return value.Encode(d.Root)
}

// Validate checks tree against root and returns the pruned document.
//
// Unknown fields are rejected. Optional fields that are absent or null are
// left out of the result; nothing is filled in from defaults. Cross-field
// rules run after the fields of their object, in declared order. The first
// failure stops validation and is returned as a [ConfigurationError].
func Validate(tree value.Value, root *Node) (*Document, error) {
	out, err := validateObject(tree, root, "")
	if err != nil {
		return nil, err
	}

	out.MoveToFront(FieldVariant, FieldVersion)

	doc := &Document{Root: out}

	if s, ok := lookupString(out, FieldVariant); ok {
		doc.Variant = s
	}

	if s, ok := lookupString(out, FieldVersion); ok {
		doc.Version = s
	}

	return doc, nil
}

func validateObject(v value.Value, node *Node, path string) (*value.Mapping, error) {
	m, ok := v.(*value.Mapping)
	if !ok {
		return nil, mismatch(path, KindObject, v)
	}

	for k := range m.All() {
		if _, known := node.index[k]; !known {
			return nil, &ViolationError{
				Path:    JoinKey(path, k),
				Message: fmt.Sprintf("unknown field in %s", node.name),
			}
		}
	}

	resolved := make(map[string]value.Value, m.Len())

	for _, f := range node.fields {
		fieldPath := JoinKey(path, f.Name)

		child, present := m.Get(f.Name)
		if present && child.Kind() == value.KindNull {
			present = false
		}

		if !present {
			if f.Required {
				return nil, &FieldRequiredError{Path: fieldPath}
			}

			continue
		}

		out, err := validateField(child, f, fieldPath)
		if err != nil {
			return nil, err
		}

		resolved[f.Name] = out
	}

	out := value.NewMapping()

	for k := range m.All() {
		if rv, ok := resolved[k]; ok {
			out.Set(k, rv)
		}
	}

	for _, r := range node.rules {
		err := r.Check(out)
		if err != nil {
			return nil, &ViolationError{Path: path, Message: err.Error(), Cause: err}
		}
	}

	return out, nil
}

func validateField(v value.Value, f Field, path string) (value.Value, error) {
	switch f.Kind {
	case KindString:
		s, ok := v.(value.String)
		if !ok {
			return nil, mismatch(path, f.Kind, v)
		}

		err := checkString(string(s), f, path)
		if err != nil {
			return nil, err
		}

		return s, nil

	case KindInteger:
		i, ok := v.(value.Int)
		if !ok {
			return nil, mismatch(path, f.Kind, v)
		}

		return i, nil

	case KindBoolean:
		b, ok := v.(value.Bool)
		if !ok {
			return nil, mismatch(path, f.Kind, v)
		}

		return b, nil

	case KindUUID:
		s, ok := v.(value.String)
		if !ok {
			return nil, mismatch(path, f.Kind, v)
		}

		if !isCanonicalUUID(string(s)) {
			return nil, &ViolationError{
				Path:    path,
				Message: fmt.Sprintf("%q is not a UUID of the form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx", string(s)),
			}
		}

		return s, nil

	case KindList:
		return validateList(v, f, path)

	case KindObject:
		return validateObject(v, f.Object, path)
	}

	return nil, &ViolationError{Path: path, Message: fmt.Sprintf("unsupported field kind %s", f.Kind)}
}

func validateList(v value.Value, f Field, path string) (value.Value, error) {
	seq, ok := v.(value.Sequence)
	if !ok {
		return nil, mismatch(path, f.Kind, v)
	}

	if len(seq) < f.MinItems {
		return nil, &ViolationError{
			Path:    path,
			Message: fmt.Sprintf("expected at least %d entries, found %d", f.MinItems, len(seq)),
		}
	}

	out := make(value.Sequence, 0, len(seq))

	for i, elem := range seq {
		checked, err := validateField(elem, *f.Items, JoinIndex(path, i))
		if err != nil {
			return nil, err
		}

		out = append(out, checked)
	}

	return out, nil
}

func checkString(s string, f Field, path string) error {
	if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
		return &ViolationError{
			Path:    path,
			Message: fmt.Sprintf("%q is not one of %s", s, strings.Join(f.Enum, ", ")),
		}
	}

	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return &ViolationError{
			Path:    path,
			Message: fmt.Sprintf("%q does not match %s", s, f.Pattern),
		}
	}

	return nil
}

// isCanonicalUUID accepts only the 36-character hyphenated form; the
// braced, URN and bare-hex forms [uuid.Parse] also understands are rejected.
func isCanonicalUUID(s string) bool {
	if len(s) != canonicalUUIDLen {
		return false
	}

	_, err := uuid.Parse(s)

	return err == nil
}

func mismatch(path string, want Kind, got value.Value) error {
	return &ViolationError{
		Path:    path,
		Message: fmt.Sprintf("expected %s, found %s", want, got.Kind()),
	}
}

func lookupString(m *value.Mapping, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}

	s, ok := v.(value.String)

	return string(s), ok
}
