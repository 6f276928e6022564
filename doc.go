// Package bumerge merges Butane configuration fragments into one validated
// document.
//
// A run has four stages:
//
//  1. Each [Source] is decoded into a [value.Value] tree.
//  2. The trees are folded left to right with [merge.Merge]: mappings merge
//     key by key, anything else in a later document replaces what came
//     before.
//  3. [Reconcile] checks the variant and version fields against the
//     requested overrides, filling them in when no document sets them.
//  4. The pair selects a model from a [schema.Registry], and
//     [schema.Validate] checks the merged tree against it, producing a
//     pruned [schema.Document].
//
// [Engine] runs all four:
//
//	engine := bumerge.NewEngine(
//		bumerge.WithVariant("fcos"),
//		bumerge.WithVersion("1.5.0"),
//	)
//
//	doc, err := engine.Run(
//		bumerge.Source{Name: "base.bu", Data: base},
//		bumerge.Source{Name: "users.bu", Data: users},
//	)
//	if err != nil {
//		// errors.Is(err, schema.ErrConfiguration) for invalid input,
//		// errors.Is(err, bumerge.ErrRead) for unparseable sources.
//	}
//
//	out, err := doc.Encode()
//
// Failures stop the run at the first error; no partial output is produced.
package bumerge
