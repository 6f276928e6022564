// Package valuetest provides helpers for building document fixtures in
// tests.
package valuetest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bumerge/value"
)

// Input normalizes an indented raw string literal for use as a fixture.
// One leading and one trailing newline are dropped, and the indentation
// common to all non-blank lines is removed. Whitespace-only lines become
// empty.
//
// Example:
//
//	doc := valuetest.Input(`
//		storage:
//		  disks:
//		    - device: /dev/vda
//	`)
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		if indent > 0 {
			lines[i] = line[indent:]
		}
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
//
// Example:
//
//	want := valuetest.JoinLF(
//		"variant: fcos",
//		"version: 1.5.0",
//	) // -> "variant: fcos\nversion: 1.5.0"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Decode decodes a YAML fixture, normalized with [Input], and fails the test
// on error.
func Decode(t testing.TB, yaml string) value.Value {
	t.Helper()

	v, err := value.Decode([]byte(Input(yaml)))
	require.NoError(t, err, "decode fixture")

	return v
}

// Mapping decodes a YAML fixture that must be a mapping.
func Mapping(t testing.TB, yaml string) *value.Mapping {
	t.Helper()

	v := Decode(t, yaml)

	m, ok := v.(*value.Mapping)
	require.True(t, ok, "fixture is a %s, not a mapping", v.Kind())

	return m
}
