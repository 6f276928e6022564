package bumerge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bumerge"
	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/value"
	"go.jacobcolvin.com/bumerge/valuetest"
)

func TestReconcile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tree    string
		variant string
		version string
		want    string
	}{
		"both present, no overrides": {
			tree: "variant: fcos\nversion: 1.5.0",
			want: "variant: fcos\nversion: 1.5.0",
		},
		"both present, matching overrides": {
			tree:    "variant: fcos\nversion: 1.5.0",
			variant: "fcos",
			version: "1.5.0",
			want:    "variant: fcos\nversion: 1.5.0",
		},
		"variant filled from override": {
			tree:    "version: 1.5.0",
			variant: "fcos",
			want:    "version: 1.5.0\nvariant: fcos",
		},
		"both filled from overrides": {
			tree:    "{}",
			variant: "fcos",
			version: "1.5.0",
			want:    "variant: fcos\nversion: 1.5.0",
		},
		"null treated as absent": {
			tree:    "variant: null\nversion: 1.5.0",
			variant: "fcos",
			want:    "variant: fcos\nversion: 1.5.0",
		},
		"other fields untouched": {
			tree:    "storage:\n  disks: []\nversion: 1.5.0",
			variant: "fcos",
			want:    "storage:\n  disks: []\nversion: 1.5.0\nvariant: fcos",
		},
		"non-string value left for validation": {
			tree: "variant: fcos\nversion: 1.5",
			want: "variant: fcos\nversion: 1.5",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tree := valuetest.Mapping(t, tc.tree)
			before := value.Clone(tree)

			got, err := bumerge.Reconcile(tree, tc.variant, tc.version)
			require.NoError(t, err)

			want := valuetest.Mapping(t, tc.want)
			assert.True(t, value.Equal(want, got), "got %v", value.ToAny(got))
			assert.True(t, value.Equal(before, tree), "input modified")
		})
	}
}

func TestReconcileErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tree     string
		variant  string
		version  string
		sentinel error
		want     string
	}{
		"nothing set": {
			tree:     "{}",
			sentinel: schema.ErrFieldRequired,
			want:     "variant: field is required; set it in a document or pass --variant",
		},
		"version missing": {
			tree:     "variant: fcos",
			sentinel: schema.ErrFieldRequired,
			want:     "version: field is required; set it in a document or pass --schema-version",
		},
		"version missing with variant override": {
			tree:     "{}",
			variant:  "fcos",
			sentinel: schema.ErrFieldRequired,
			want:     "version: field is required; set it in a document or pass --schema-version",
		},
		"variant mismatch": {
			tree:     "variant: fcos",
			variant:  "other",
			sentinel: schema.ErrFieldMismatch,
			want:     `variant: documents set "fcos" but --variant requests "other"`,
		},
		"variant checked before version": {
			tree:     "variant: fcos\nversion: 1.4.0",
			variant:  "other",
			version:  "1.5.0",
			sentinel: schema.ErrFieldMismatch,
			want:     `variant: documents set "fcos" but --variant requests "other"`,
		},
		"version mismatch": {
			tree:     "variant: fcos\nversion: 1.4.0",
			version:  "1.5.0",
			sentinel: schema.ErrFieldMismatch,
			want:     `version: documents set "1.4.0" but --schema-version requests "1.5.0"`,
		},
		"non-string value with override": {
			tree:     "variant: fcos\nversion: 1.5",
			version:  "1.5.0",
			sentinel: schema.ErrFieldMismatch,
			want:     `version: documents set "1.5" but --schema-version requests "1.5.0"`,
		},
		"non-string version": {
			tree:     "variant: fcos\nversion: 1.5",
			sentinel: schema.ErrSchemaViolation,
			want:     "version: expected string, found float",
		},
		"non-string variant": {
			tree:     "variant: [fcos]\nversion: 1.5.0",
			sentinel: schema.ErrSchemaViolation,
			want:     "variant: expected string, found sequence",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := bumerge.Reconcile(valuetest.Mapping(t, tc.tree), tc.variant, tc.version)
			require.ErrorIs(t, err, tc.sentinel)
			require.ErrorIs(t, err, schema.ErrConfiguration)
			assert.EqualError(t, err, tc.want)
			assert.Nil(t, got)
		})
	}
}

func TestReconcileNilTree(t *testing.T) {
	t.Parallel()

	got, err := bumerge.Reconcile(nil, "fcos", "1.5.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"variant", "version"}, got.Keys())
}
