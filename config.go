package bumerge

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/bumerge/schema"
)

// Flags holds CLI flag names for merge configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Variant string
	Version string
	Output  string
}

// Config holds CLI flag values for merge configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewEngine] to create an [Engine].
type Config struct {
	Flags    Flags
	Registry *schema.Registry
	Variant  string
	Version  string
	Output   string
}

// NewConfig returns a new [Config] with default flag names and the
// [DefaultRegistry].
func NewConfig() *Config {
	f := Flags{
		Variant: FlagVariant,
		Version: FlagSchemaVersion,
		Output:  "output",
	}

	return &Config{Flags: f, Registry: DefaultRegistry()}
}

// RegisterFlags adds merge flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Variant, c.Flags.Variant, "",
		"variant to use when no document sets one")
	flags.StringVar(&c.Version, c.Flags.Version, "",
		"specification version to use when no document sets one")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
}

// RegisterCompletions registers shell completions for merge flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	var variants, versions []string

	for _, e := range c.Registry.Entries() {
		if !slices.Contains(variants, e.Variant) {
			variants = append(variants, e.Variant)
		}

		if !slices.Contains(versions, e.Version) {
			versions = append(versions, e.Version)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Variant,
		cobra.FixedCompletions(variants, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Variant, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Version,
		cobra.FixedCompletions(versions, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Version, err)
	}

	return nil
}

// NewEngine creates an [Engine] using this [Config].
func (c *Config) NewEngine(logger *slog.Logger) *Engine {
	opts := []Option{
		WithFlagNames(c.Flags.Variant, c.Flags.Version),
		WithVariant(c.Variant),
		WithVersion(c.Version),
	}

	if c.Registry != nil {
		opts = append(opts, WithRegistry(c.Registry))
	}

	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}

	return NewEngine(opts...)
}
