package schema

import (
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// Draft202012 is the $schema URI of exported schemas.
const Draft202012 = "https://json-schema.org/draft/2020-12/schema"

const uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

// JSON Schema type constants.
const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// JSONSchema renders root as a JSON Schema (draft 2020-12). The root object
// is inlined; every nested node becomes an entry under $defs, referenced by
// name. Objects reject unknown properties. [MutuallyExclusive] rules are
// expressed with "not"/"required" pairs and [Requires] rules with
// "if"/"then".
func JSONSchema(root *Node) *jsonschema.Schema {
	x := &exporter{defs: make(map[string]*jsonschema.Schema)}

	s := x.object(root)
	s.Schema = Draft202012
	s.Title = root.name

	if len(x.defs) > 0 {
		s.Defs = x.defs
	}

	return s
}

type exporter struct {
	defs map[string]*jsonschema.Schema
}

// ref returns a reference to node, adding it to $defs on first use.
func (x *exporter) ref(node *Node) *jsonschema.Schema {
	if _, ok := x.defs[node.name]; !ok {
		// Reserve the name before descending.
		x.defs[node.name] = nil
		x.defs[node.name] = x.object(node)
	}

	return &jsonschema.Schema{Ref: "#/$defs/" + node.name}
}

func (x *exporter) object(node *Node) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:                 typeObject,
		AdditionalProperties: falseSchema(),
	}

	if len(node.fields) > 0 {
		s.Properties = make(map[string]*jsonschema.Schema, len(node.fields))
	}

	for _, f := range node.fields {
		s.Properties[f.Name] = x.field(f)
		s.PropertyOrder = append(s.PropertyOrder, f.Name)

		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}

	for _, r := range node.rules {
		switch rule := r.(type) {
		case MutuallyExclusive:
			for i := range rule {
				for j := i + 1; j < len(rule); j++ {
					s.AllOf = append(s.AllOf, &jsonschema.Schema{
						Not: &jsonschema.Schema{Required: []string{rule[i], rule[j]}},
					})
				}
			}

		case Requires:
			cond := &jsonschema.Schema{
				Required: []string{rule.Field},
				Properties: map[string]*jsonschema.Schema{
					rule.Field: {Not: &jsonschema.Schema{Const: jsonschema.Ptr[any](false)}},
				},
			}

			for _, name := range slices.Sorted(maps.Keys(rule.Exempt)) {
				cond.AllOf = append(cond.AllOf, &jsonschema.Schema{
					Not: &jsonschema.Schema{
						Required: []string{name},
						Properties: map[string]*jsonschema.Schema{
							name: {Const: jsonschema.Ptr[any](rule.Exempt[name])},
						},
					},
				})
			}

			s.AllOf = append(s.AllOf, &jsonschema.Schema{
				If:   cond,
				Then: &jsonschema.Schema{Required: []string{rule.Dependency}},
			})
		}
	}

	return s
}

func (x *exporter) field(f Field) *jsonschema.Schema {
	var s *jsonschema.Schema

	switch f.Kind {
	case KindString:
		s = &jsonschema.Schema{Type: typeString}
		for _, e := range f.Enum {
			s.Enum = append(s.Enum, e)
		}

		if f.Pattern != nil {
			s.Pattern = f.Pattern.String()
		}

	case KindInteger:
		s = &jsonschema.Schema{Type: typeInteger}
	case KindBoolean:
		s = &jsonschema.Schema{Type: typeBoolean}
	case KindUUID:
		s = &jsonschema.Schema{Type: typeString, Format: "uuid", Pattern: uuidPattern}
	case KindList:
		s = &jsonschema.Schema{Type: typeArray, Items: x.field(*f.Items)}
		if f.MinItems > 0 {
			s.MinItems = jsonschema.Ptr(f.MinItems)
		}

	case KindObject:
		s = x.ref(f.Object)
	default:
		s = &jsonschema.Schema{}
	}

	s.Description = f.Description

	return s
}

// falseSchema returns a schema that validates nothing (marshals to JSON
// false).
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
