// Package schema defines configuration formats as static trees of [Node]
// values and validates documents against them.
//
// A [Node] is an object type: an ordered list of [Field] definitions plus
// zero or more [Rule] values spanning sibling fields. Fields are built with
// constructors that encode the accepted kind:
//
//	partition := schema.NewNode("Partition", []schema.Field{
//		schema.String("label"),
//		schema.Integer("size_mib"),
//		schema.UUID("guid"),
//	})
//
//	disk := schema.NewNode("Disk", []schema.Field{
//		schema.String("device", schema.Required()),
//		schema.Objects("partitions", partition),
//	})
//
// [Validate] walks a [value.Value] tree and the node tree in lock-step. It is
// strict: unknown fields, kind mismatches (including floats or booleans where
// an integer is expected), missing required fields and rule violations all
// fail, and the first failure ends the walk. Each failure is a
// [ConfigurationError] carrying the dotted path of the offending node, such
// as "storage.disks[2].partitions[0].size_mib".
//
// A [Registry] maps variant/version pairs to root nodes. [JSONSchema] renders
// a node tree as a JSON Schema document for use by editors and other tools.
package schema
