package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/valuetest"
)

func TestMutuallyExclusive(t *testing.T) {
	t.Parallel()

	rule := schema.MutuallyExclusive{"source", "inline", "local"}

	tcs := map[string]struct {
		input string
		err   string
	}{
		"none set": {
			input: "compression: gzip",
		},
		"one set": {
			input: "inline: hello",
		},
		"two set": {
			input: "local: motd\ninline: hello",
			err:   "conflicting fields: only one of source, inline, local may be set, found inline and local",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := rule.Check(valuetest.Mapping(t, tc.input))
			if tc.err == "" {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, schema.ErrConflict)
			assert.EqualError(t, err, tc.err)
		})
	}

	assert.Equal(t, []string{"source", "inline", "local"}, rule.Fields())
	assert.Equal(t, "at most one of source, inline, local", rule.String())
}

func TestRequires(t *testing.T) {
	t.Parallel()

	rule := schema.Requires{
		Field:      "with_mount_unit",
		Dependency: "path",
		Exempt:     map[string]string{"format": "swap"},
	}

	tcs := map[string]struct {
		input string
		fail  bool
	}{
		"field absent": {
			input: "device: /dev/vdb",
		},
		"field false": {
			input: "with_mount_unit: false",
		},
		"dependency set": {
			input: "with_mount_unit: true\npath: /var",
		},
		"exempt": {
			input: "with_mount_unit: true\nformat: swap",
		},
		"not exempt": {
			input: "with_mount_unit: true\nformat: xfs",
			fail:  true,
		},
		"dependency missing": {
			input: "with_mount_unit: true",
			fail:  true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := rule.Check(valuetest.Mapping(t, tc.input))
			if !tc.fail {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, schema.ErrDependency)
			assert.EqualError(t, err, "missing dependency: with_mount_unit requires path to be set")
		})
	}

	assert.Equal(t, []string{"with_mount_unit", "path", "format"}, rule.Fields())
}

func TestNewNode(t *testing.T) {
	t.Parallel()

	node := schema.NewNode("Unit", []schema.Field{
		schema.String("name", schema.Required()),
		schema.Bool("enabled"),
	})

	assert.Equal(t, "Unit", node.Name())
	assert.Len(t, node.Fields(), 2)
	assert.Empty(t, node.Rules())

	f, ok := node.Field("name")
	require.True(t, ok)
	assert.True(t, f.Required)
	assert.Equal(t, schema.KindString, f.Kind)

	_, ok = node.Field("missing")
	assert.False(t, ok)

	assert.PanicsWithValue(t, `schema: node Unit declares field "name" twice`, func() {
		schema.NewNode("Unit", []schema.Field{schema.String("name"), schema.Bool("name")})
	})

	assert.PanicsWithValue(t, `schema: rule "at most one of name, mask" on node Unit refers to unknown field "mask"`, func() {
		schema.NewNode("Unit", []schema.Field{schema.String("name")}, schema.MutuallyExclusive{"name", "mask"})
	})
}

func TestFieldConstructors(t *testing.T) {
	t.Parallel()

	node := schema.NewNode("N", nil)

	tcs := map[string]struct {
		field schema.Field
		kind  schema.Kind
		items schema.Kind
	}{
		"string":  {field: schema.String("a"), kind: schema.KindString},
		"integer": {field: schema.Integer("a"), kind: schema.KindInteger},
		"bool":    {field: schema.Bool("a"), kind: schema.KindBoolean},
		"uuid":    {field: schema.UUID("a"), kind: schema.KindUUID},
		"object":  {field: schema.Object("a", node), kind: schema.KindObject},
		"strings": {field: schema.Strings("a"), kind: schema.KindList, items: schema.KindString},
		"objects": {field: schema.Objects("a", node), kind: schema.KindList, items: schema.KindObject},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, "a", tc.field.Name)
			assert.Equal(t, tc.kind, tc.field.Kind)

			if tc.kind == schema.KindList {
				require.NotNil(t, tc.field.Items)
				assert.Equal(t, tc.items, tc.field.Items.Kind)
				assert.Empty(t, tc.field.Items.Name)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "integer", schema.KindInteger.String())
	assert.Equal(t, "list", schema.KindList.String())
	assert.Equal(t, "Kind(42)", schema.Kind(42).String())
}
