// Package fcos defines the Fedora CoreOS Butane configuration model,
// specification version 1.5.0.
package fcos

import (
	"go.jacobcolvin.com/bumerge/schema"
)

// Identity of the model.
const (
	Variant = "fcos"
	Version = "1.5.0"
)

var root = newConfig()

// V1_5 returns the root node of the fcos 1.5.0 model.
func V1_5() *schema.Node {
	return root
}

// Entry returns the registry entry for the model.
func Entry() schema.Entry {
	return schema.Entry{Variant: Variant, Version: Version, Root: root}
}

func newConfig() *schema.Node {
	resource := newResource()

	return schema.NewNode("Config", []schema.Field{
		schema.String(schema.FieldVariant, schema.Required(), schema.OneOf(Variant),
			schema.Describe("Configuration variant.")),
		schema.String(schema.FieldVersion, schema.Required(), schema.OneOf(Version),
			schema.Describe("Configuration specification version.")),
		schema.Object("ignition", newIgnition(resource)),
		schema.Object("storage", newStorage(resource)),
		schema.Object("systemd", newSystemd()),
		schema.Object("passwd", newPasswd()),
		schema.Object("kernel_arguments", newKernelArguments()),
		schema.Object("boot_device", newBootDevice()),
		schema.Object("grub", newGrub()),
	})
}

// newResource describes a piece of content: fetched from a URL, written
// inline, or read from a file next to the config at transpile time.
func newResource() *schema.Node {
	header := schema.NewNode("HTTPHeader", []schema.Field{
		schema.String("name", schema.Required()),
		schema.String("value"),
	})

	verification := schema.NewNode("Verification", []schema.Field{
		schema.String("hash",
			schema.Matches(`^(sha256|sha512)-[0-9a-f]+$`),
			schema.Describe("Hash of the fetched content, as <type>-<hex digest>.")),
	})

	return schema.NewNode("Resource", []schema.Field{
		schema.String("compression", schema.OneOf("gzip")),
		schema.Objects("http_headers", header),
		schema.String("source", schema.Describe("URL of the contents.")),
		schema.String("inline", schema.Describe("Contents written inline.")),
		schema.String("local", schema.Describe("Local file path, relative to the files directory.")),
		schema.Object("verification", verification),
	},
		schema.MutuallyExclusive{"source", "inline", "local"},
	)
}

func newIgnition(resource *schema.Node) *schema.Node {
	config := schema.NewNode("IgnitionConfig", []schema.Field{
		schema.Objects("merge", resource),
		schema.Object("replace", resource),
	})

	proxy := schema.NewNode("Proxy", []schema.Field{
		schema.String("http_proxy"),
		schema.String("https_proxy"),
		schema.Strings("no_proxy"),
	})

	tls := schema.NewNode("TLS", []schema.Field{
		schema.Objects("certificate_authorities", resource),
	})

	security := schema.NewNode("Security", []schema.Field{
		schema.Object("tls", tls),
	})

	timeouts := schema.NewNode("Timeouts", []schema.Field{
		schema.Integer("http_response_headers"),
		schema.Integer("http_total"),
	})

	return schema.NewNode("Ignition", []schema.Field{
		schema.Object("config", config),
		schema.Object("proxy", proxy),
		schema.Object("security", security),
		schema.Object("timeouts", timeouts),
	})
}
