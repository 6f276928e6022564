package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/schema/fcos"
	"go.jacobcolvin.com/bumerge/value"
	"go.jacobcolvin.com/bumerge/valuetest"
)

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	partition := schema.NewNode("Partition", []schema.Field{
		schema.String("label", schema.Matches(`^[a-z]+$`)),
		schema.Integer("size_mib"),
	})

	disk := schema.NewNode("Disk", []schema.Field{
		schema.String("device", schema.Required(), schema.Describe("Block device.")),
		schema.Objects("partitions", partition),
		schema.Bool("wipe"),
		schema.UUID("guid"),
		schema.String("mode", schema.OneOf("a", "b")),
		schema.Strings("tags", schema.MinItems(1)),
	},
		schema.MutuallyExclusive{"wipe", "guid"},
		schema.Requires{Field: "wipe", Dependency: "device"},
	)

	want := `{
	  "$schema": "https://json-schema.org/draft/2020-12/schema",
	  "title": "Disk",
	  "type": "object",
	  "properties": {
	    "device": {"type": "string", "description": "Block device."},
	    "partitions": {"type": "array", "items": {"$ref": "#/$defs/Partition"}},
	    "wipe": {"type": "boolean"},
	    "guid": {
	      "type": "string",
	      "format": "uuid",
	      "pattern": "^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$"
	    },
	    "mode": {"type": "string", "enum": ["a", "b"]},
	    "tags": {"type": "array", "items": {"type": "string"}, "minItems": 1}
	  },
	  "required": ["device"],
	  "additionalProperties": false,
	  "allOf": [
	    {"not": {"required": ["wipe", "guid"]}},
	    {
	      "if": {"required": ["wipe"], "properties": {"wipe": {"not": {"const": false}}}},
	      "then": {"required": ["device"]}
	    }
	  ],
	  "$defs": {
	    "Partition": {
	      "type": "object",
	      "properties": {
	        "label": {"type": "string", "pattern": "^[a-z]+$"},
	        "size_mib": {"type": "integer"}
	      },
	      "additionalProperties": false
	    }
	  }
	}`

	got, err := json.Marshal(schema.JSONSchema(disk))
	require.NoError(t, err)
	assert.JSONEq(t, want, string(got))
}

func TestJSONSchemaPropertyOrder(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(schema.JSONSchema(fcos.V1_5()))
	require.NoError(t, err)

	var top struct {
		Properties json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(got, &top))

	// Keys are emitted in declared order, so the identity fields lead.
	assert.Regexp(t, `^\{"variant":.*?,"version":.*?,"ignition":`, string(top.Properties))
}

func TestJSONSchemaFCOS(t *testing.T) {
	t.Parallel()

	s := schema.JSONSchema(fcos.V1_5())

	assert.Equal(t, "Config", s.Title)
	assert.Equal(t, []string{"variant", "version"}, s.Required)

	for _, name := range []string{
		"Resource", "Storage", "File", "Disk", "Partition", "Filesystem",
		"Luks", "Clevis", "Tang", "Raid", "Systemd", "Unit", "Dropin",
		"Passwd", "PasswdUser", "PasswdGroup", "BootDevice", "Grub",
	} {
		assert.Contains(t, s.Defs, name)
	}

	resolved, err := s.Resolve(nil)
	require.NoError(t, err)

	tcs := map[string]struct {
		input string
		valid bool
	}{
		"identity only": {
			input: header,
			valid: true,
		},
		"full document": {
			input: header + valuetest.JoinLF(
				"storage:",
				"  disks:",
				"    - device: /dev/vda",
				"      partitions:",
				"        - label: data",
				"          size_mib: 8192",
				"          type_guid: 0fc63daf-8483-4772-8e79-3d69d8477de4",
				"  filesystems:",
				"    - device: /dev/disk/by-partlabel/data",
				"      format: xfs",
				"      path: /var/data",
				"      with_mount_unit: true",
				"passwd:",
				"  users:",
				"    - name: core",
				"      ssh_authorized_keys: [ssh-ed25519 AAAA]",
			),
			valid: true,
		},
		"missing identity": {
			input: "storage: {}",
		},
		"unknown field": {
			input: header + "bogus: true",
		},
		"wrong type": {
			input: header + "storage:\n  disks:\n    - device: 42",
		},
		"enum": {
			input: header + "storage:\n  filesystems:\n    - device: /dev/vdb\n      format: ntfs",
		},
		"conflicting resource sources": {
			input: header + valuetest.JoinLF(
				"storage:",
				"  files:",
				"    - path: /etc/motd",
				"      contents:",
				"        source: https://example.com/motd",
				"        inline: hello",
			),
		},
		"mount unit without path": {
			input: header + "storage:\n  filesystems:\n    - device: /dev/vdb\n      with_mount_unit: true",
		},
		"swap mount unit without path": {
			input: header + valuetest.JoinLF(
				"storage:",
				"  filesystems:",
				"    - device: /dev/vdb",
				"      format: swap",
				"      with_mount_unit: true",
			),
			valid: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := resolved.Validate(jsonInstance(t, valuetest.Decode(t, tc.input)))
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

// jsonInstance converts v to the form produced by [json.Unmarshal], which is
// what the JSON Schema validator expects.
func jsonInstance(t *testing.T, v value.Value) any {
	t.Helper()

	b, err := json.Marshal(value.ToAny(v))
	require.NoError(t, err)

	var out any
	require.NoError(t, json.Unmarshal(b, &out))

	return out
}
