package fcos

import (
	"go.jacobcolvin.com/bumerge/schema"
)

func newStorage(resource *schema.Node) *schema.Node {
	user := schema.NewNode("NodeUser", []schema.Field{
		schema.Integer("id"),
		schema.String("name"),
	},
		schema.MutuallyExclusive{"id", "name"},
	)

	group := schema.NewNode("NodeGroup", []schema.Field{
		schema.Integer("id"),
		schema.String("name"),
	},
		schema.MutuallyExclusive{"id", "name"},
	)

	// Fields shared by files, directories and links.
	common := func(extra ...schema.Field) []schema.Field {
		return append([]schema.Field{
			schema.Object("group", group),
			schema.Bool("overwrite"),
			schema.String("path", schema.Required()),
			schema.Object("user", user),
		}, extra...)
	}

	file := schema.NewNode("File", common(
		schema.Objects("append", resource),
		schema.Object("contents", resource),
		schema.Integer("mode"),
	))

	directory := schema.NewNode("Directory", common(
		schema.Integer("mode"),
	))

	link := schema.NewNode("Link", common(
		schema.Bool("hard"),
		schema.String("target"),
	))

	tree := schema.NewNode("Tree", []schema.Field{
		schema.String("local", schema.Required()),
		schema.String("path"),
	})

	return schema.NewNode("Storage", []schema.Field{
		schema.Objects("directories", directory),
		schema.Objects("disks", newDisk()),
		schema.Objects("files", file),
		schema.Objects("filesystems", newFilesystem()),
		schema.Objects("links", link),
		schema.Objects("luks", newLuks(resource)),
		schema.Objects("raid", newRaid()),
		schema.Objects("trees", tree),
	})
}

func newDisk() *schema.Node {
	partition := schema.NewNode("Partition", []schema.Field{
		schema.UUID("guid"),
		schema.String("label",
			schema.Matches(`^[^:]{0,36}$`),
			schema.Describe("Partition label, at most 36 characters and no colons.")),
		schema.Integer("number"),
		schema.Bool("resize"),
		schema.Bool("should_exist"),
		schema.Integer("size_mib"),
		schema.Integer("start_mib"),
		schema.UUID("type_guid"),
		schema.Bool("wipe_partition_entry"),
	})

	return schema.NewNode("Disk", []schema.Field{
		schema.String("device", schema.Required()),
		schema.Objects("partitions", partition),
		schema.Bool("wipe_table"),
	})
}

func newFilesystem() *schema.Node {
	return schema.NewNode("Filesystem", []schema.Field{
		schema.String("device", schema.Required()),
		schema.String("format", schema.OneOf("btrfs", "ext4", "none", "swap", "vfat", "xfs")),
		schema.String("label"),
		schema.Strings("mount_options"),
		schema.Strings("options"),
		schema.String("path"),
		schema.String("uuid"),
		schema.Bool("wipe_filesystem"),
		schema.Bool("with_mount_unit"),
	},
		schema.Requires{
			Field:      "with_mount_unit",
			Dependency: "path",
			Exempt:     map[string]string{"format": "swap"},
		},
	)
}

func newLuks(resource *schema.Node) *schema.Node {
	custom := schema.NewNode("ClevisCustom", []schema.Field{
		schema.String("config", schema.Required()),
		schema.Bool("needs_network"),
		schema.String("pin", schema.Required(), schema.OneOf("sss", "tang", "tpm2")),
	})

	clevis := schema.NewNode("Clevis", []schema.Field{
		schema.Object("custom", custom),
		schema.Objects("tang", tang),
		schema.Integer("threshold"),
		schema.Bool("tpm2"),
	},
		schema.MutuallyExclusive{"custom", "tang"},
		schema.MutuallyExclusive{"custom", "tpm2"},
	)

	return schema.NewNode("Luks", []schema.Field{
		schema.Object("clevis", clevis),
		schema.String("device", schema.Required()),
		schema.Bool("discard"),
		schema.Object("key_file", resource),
		schema.String("label"),
		schema.String("name", schema.Required()),
		schema.Strings("open_options"),
		schema.Strings("options"),
		schema.UUID("uuid"),
		schema.Bool("wipe_volume"),
	})
}

// tang is shared by storage LUKS volumes and the boot device.
var tang = schema.NewNode("Tang", []schema.Field{
	schema.String("url", schema.Required()),
	schema.String("thumbprint"),
	schema.String("advertisement"),
})

func newRaid() *schema.Node {
	return schema.NewNode("Raid", []schema.Field{
		schema.Strings("devices"),
		schema.String("level", schema.OneOf("linear", "raid0", "raid1", "raid4", "raid5", "raid6", "raid10")),
		schema.String("name", schema.Required()),
		schema.Strings("options"),
		schema.Integer("spares"),
	})
}
