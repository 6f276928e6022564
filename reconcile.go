package bumerge

import (
	"fmt"

	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/value"
)

// Default flag names for the identity overrides.
const (
	FlagVariant       = "variant"
	FlagSchemaVersion = "schema-version"
)

// identity pairs an identity field with the override that may supply it.
type identity struct {
	field     string
	flag      string
	requested string
}

// Reconcile checks the identity fields of a merged tree against the
// requested overrides and returns a copy of tree with any missing field
// filled in. An empty override means none was given.
//
// The variant is checked before the version. A field that is absent (or
// null) without an override fails with [schema.FieldRequiredError]; a field
// whose value differs from its override fails with
// [schema.FieldMismatchError]. A field that is not a string and has no
// override fails with [schema.ViolationError].
func Reconcile(tree *value.Mapping, variant, version string) (*value.Mapping, error) {
	return reconcile(tree, []identity{
		{field: schema.FieldVariant, flag: FlagVariant, requested: variant},
		{field: schema.FieldVersion, flag: FlagSchemaVersion, requested: version},
	})
}

func reconcile(tree *value.Mapping, ids []identity) (*value.Mapping, error) {
	out := value.NewMapping()
	if tree != nil {
		out, _ = value.Clone(tree).(*value.Mapping)
	}

	for _, id := range ids {
		got, present := out.Get(id.field)
		if present && got.Kind() == value.KindNull {
			present = false
		}

		switch {
		case !present && id.requested == "":
			return nil, &schema.FieldRequiredError{Path: id.field, Flag: id.flag}

		case !present:
			out.Set(id.field, value.String(id.requested))

		case id.requested == "":
			if _, ok := got.(value.String); !ok {
				return nil, &schema.ViolationError{
					Path:    id.field,
					Message: fmt.Sprintf("expected %s, found %s", schema.KindString, got.Kind()),
				}
			}

		case id.requested != "" && got != value.Value(value.String(id.requested)):
			return nil, &schema.FieldMismatchError{
				Path:      id.field,
				Flag:      id.flag,
				Value:     display(got),
				Requested: id.requested,
			}
		}
	}

	return out, nil
}

// display renders a scalar for an error message.
func display(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return string(s)
	}

	return fmt.Sprint(value.ToAny(v))
}
