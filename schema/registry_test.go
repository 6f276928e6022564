package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/schema/fcos"
)

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	registry := schema.NewRegistry(fcos.Entry())

	tcs := map[string]struct {
		variant string
		version string
		cause   bool
	}{
		"unknown variant": {
			variant: "flatcar",
			version: "1.5.0",
		},
		"unknown version": {
			variant: "fcos",
			version: "1.4.0",
		},
		"version prefix is not a match": {
			variant: "fcos",
			version: "1.5",
		},
		"malformed version": {
			variant: "fcos",
			version: "latest",
			cause:   true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root, err := registry.Lookup(tc.variant, tc.version)
			require.ErrorIs(t, err, schema.ErrUnsupportedSchema)
			require.ErrorIs(t, err, schema.ErrConfiguration)
			assert.Nil(t, root)

			var uerr *schema.UnsupportedSchemaError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tc.variant, uerr.Variant)
			assert.Equal(t, tc.version, uerr.Version)
			assert.Equal(t, []string{"fcos 1.5.0"}, uerr.Supported)
			assert.Equal(t, tc.cause, uerr.Cause != nil)
			assert.Empty(t, uerr.FieldPath())
			assert.ErrorContains(t, err, "(supported: fcos 1.5.0)")
		})
	}

	root, err := registry.Lookup(fcos.Variant, fcos.Version)
	require.NoError(t, err)
	assert.Same(t, fcos.V1_5(), root)
}

func TestRegistryEntries(t *testing.T) {
	t.Parallel()

	node := schema.NewNode("Config", nil)

	registry := schema.NewRegistry(
		schema.Entry{Variant: "fcos", Version: "1.10.0", Root: node},
		schema.Entry{Variant: "openshift", Version: "4.14.0", Root: node},
		schema.Entry{Variant: "fcos", Version: "1.5.0", Root: node},
		schema.Entry{Variant: "fcos", Version: "1.6.0-experimental", Root: node},
	)

	var got []string
	for _, e := range registry.Entries() {
		got = append(got, e.String())
	}

	assert.Equal(t, []string{
		"fcos 1.5.0",
		"fcos 1.6.0-experimental",
		"fcos 1.10.0",
		"openshift 4.14.0",
	}, got)

	assert.Panics(t, func() {
		schema.NewRegistry(schema.Entry{Variant: "fcos", Version: "next", Root: node})
	})

	assert.Panics(t, func() {
		schema.NewRegistry(fcos.Entry(), fcos.Entry())
	})
}
