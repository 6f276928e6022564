package fcos

import (
	"go.jacobcolvin.com/bumerge/schema"
)

func newSystemd() *schema.Node {
	dropin := schema.NewNode("Dropin", []schema.Field{
		schema.String("contents"),
		schema.String("contents_local"),
		schema.String("name", schema.Required()),
	},
		schema.MutuallyExclusive{"contents", "contents_local"},
	)

	unit := schema.NewNode("Unit", []schema.Field{
		schema.String("contents"),
		schema.String("contents_local"),
		schema.Objects("dropins", dropin),
		schema.Bool("enabled"),
		schema.Bool("mask"),
		schema.String("name", schema.Required()),
	},
		schema.MutuallyExclusive{"contents", "contents_local"},
	)

	return schema.NewNode("Systemd", []schema.Field{
		schema.Objects("units", unit),
	})
}

func newPasswd() *schema.Node {
	user := schema.NewNode("PasswdUser", []schema.Field{
		schema.String("gecos"),
		schema.Strings("groups"),
		schema.String("home_dir"),
		schema.String("name", schema.Required()),
		schema.Bool("no_create_home"),
		schema.Bool("no_log_init"),
		schema.Bool("no_user_group"),
		schema.String("password_hash"),
		schema.String("primary_group"),
		schema.String("shell"),
		schema.Bool("should_exist"),
		schema.Strings("ssh_authorized_keys"),
		schema.Strings("ssh_authorized_keys_local"),
		schema.Bool("system"),
		schema.Integer("uid"),
	})

	group := schema.NewNode("PasswdGroup", []schema.Field{
		schema.Integer("gid"),
		schema.String("name", schema.Required()),
		schema.String("password_hash"),
		schema.Bool("should_exist"),
		schema.Bool("system"),
	})

	return schema.NewNode("Passwd", []schema.Field{
		schema.Objects("users", user),
		schema.Objects("groups", group),
	})
}

func newKernelArguments() *schema.Node {
	return schema.NewNode("KernelArguments", []schema.Field{
		schema.Strings("should_exist"),
		schema.Strings("should_not_exist"),
	})
}

func newBootDevice() *schema.Node {
	luks := schema.NewNode("BootDeviceLuks", []schema.Field{
		schema.Bool("discard"),
		schema.Objects("tang", tang),
		schema.Integer("threshold"),
		schema.Bool("tpm2"),
	})

	mirror := schema.NewNode("BootDeviceMirror", []schema.Field{
		schema.Strings("devices", schema.MinItems(2)),
	})

	return schema.NewNode("BootDevice", []schema.Field{
		schema.String("layout", schema.OneOf("aarch64", "ppc64le", "x86_64")),
		schema.Object("luks", luks),
		schema.Object("mirror", mirror),
	})
}

func newGrub() *schema.Node {
	user := schema.NewNode("GrubUser", []schema.Field{
		schema.String("name", schema.Required()),
		schema.String("password_hash", schema.Required()),
	})

	return schema.NewNode("Grub", []schema.Field{
		schema.Objects("users", user),
	})
}
