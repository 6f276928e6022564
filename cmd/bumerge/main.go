// Package main provides the CLI entry point for bumerge, a tool that merges
// Butane configuration fragments into one validated document.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"go.jacobcolvin.com/bumerge"
	"go.jacobcolvin.com/bumerge/log"
	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/version"
)

const envPrefix = "BUMERGE"

var (
	errWriteOutput = errors.New("write output")
	errEnv         = errors.New("environment")
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *bumerge.Config
	logCfg *log.Config
	logger *slog.Logger
}

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    bumerge.NewConfig(),
		logCfg: log.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "bumerge [flags] <file.bu> [file2.bu ...]",
		Short: "Merge Butane configs into one validated document",
		Long: `bumerge merges Butane configuration files in the order given. Mappings are
merged key by key; any other value in a later file replaces the earlier one.
The result is checked against the Butane specification selected by its
variant and version fields and written as YAML.

Use - to read a file from standard input. Every flag may also be set with an
environment variable named BUMERGE_<FLAG>, for example BUMERGE_SCHEMA_VERSION.`,
		Version:           version.String(),
		Args:              cobra.MinimumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(_ *cobra.Command, args []string) error {
			return a.merge(args)
		},
	}

	rootCmd.Flags().BoolP("version", "V", false, "print version information")
	rootCmd.SetVersionTemplate("bumerge {{.Version}}\n")
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	a.cfg.RegisterFlags(rootCmd.PersistentFlags())
	a.logCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(a.newSchemaCmd(), a.newVersionCmd())

	for _, register := range []func(*cobra.Command) error{
		a.cfg.RegisterCompletions,
		a.logCfg.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	return rootCmd
}

func (a *app) newSchemaCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a Butane specification",
		Long: `schema prints the JSON Schema (draft 2020-12) of the specification selected
with --variant and --schema-version. Without them, the newest registered
version of the first variant is used.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if list {
				return a.listSchemas()
			}

			return a.printSchema()
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list registered variants and versions")

	return cmd
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := io.WriteString(a.stdout, version.Info())
			if err != nil {
				return fmt.Errorf("%w: %w", errWriteOutput, err)
			}

			return nil
		},
	}
}

// setup applies environment overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	err := applyEnv(cmd.Flags())
	if err != nil {
		return err
	}

	handler, err := a.logCfg.NewHandler(a.stderr)
	if err != nil {
		return err
	}

	a.logger = slog.New(handler)

	return nil
}

// applyEnv sets every flag not given on the command line from its
// BUMERGE_<FLAG> environment variable, if set.
func applyEnv(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var errs []error

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" || f.Name == "version" || !v.IsSet(f.Name) {
			return
		}

		err := flags.Set(f.Name, v.GetString(f.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s_%s: %w",
				errEnv, envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err))
		}
	})

	return errors.Join(errs...)
}

func (a *app) merge(args []string) error {
	sources := make([]bumerge.Source, 0, len(args))

	for _, arg := range args {
		src, err := a.read(arg)
		if err != nil {
			return err
		}

		sources = append(sources, src)
	}

	doc, err := a.cfg.NewEngine(a.logger).Run(sources...)
	if err != nil {
		return err
	}

	out, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return a.write(out)
}

func (a *app) read(arg string) (bumerge.Source, error) {
	if arg != "-" {
		data, err := os.ReadFile(arg)
		if err != nil {
			return bumerge.Source{}, &bumerge.ReadError{Source: arg, Cause: err}
		}

		return bumerge.Source{Name: arg, Data: data}, nil
	}

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.logger.Warn("reading config from terminal, end input with Ctrl-D")
	}

	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return bumerge.Source{}, &bumerge.ReadError{Source: "stdin", Cause: err}
	}

	return bumerge.Source{Name: "stdin", Data: data}, nil
}

func (a *app) write(out []byte) error {
	if a.cfg.Output == "" || a.cfg.Output == "-" {
		_, err := a.stdout.Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", errWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(a.cfg.Output, out, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return nil
}

func (a *app) listSchemas() error {
	var b strings.Builder
	for _, e := range a.cfg.Registry.Entries() {
		b.WriteString(e.String() + "\n")
	}

	return a.write([]byte(b.String()))
}

func (a *app) printSchema() error {
	entry, err := selectEntry(a.cfg.Registry, a.cfg.Variant, a.cfg.Version)
	if err != nil {
		return err
	}

	a.logger.Debug("exporting schema", slog.String("schema", entry.String()))

	out, err := json.MarshalIndent(schema.JSONSchema(entry.Root), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return a.write(append(out, '\n'))
}

// selectEntry picks the registry entry for variant and version. An empty
// variant selects the first registered one; an empty version selects the
// newest version of the variant.
func selectEntry(registry *schema.Registry, variant, ver string) (schema.Entry, error) {
	entries := registry.Entries()

	if variant == "" && len(entries) > 0 {
		variant = entries[0].Variant
	}

	if ver == "" {
		for _, e := range entries {
			if e.Variant == variant {
				ver = e.Version
			}
		}
	}

	root, err := registry.Lookup(variant, ver)
	if err != nil {
		return schema.Entry{}, err
	}

	return schema.Entry{Root: root, Variant: variant, Version: ver}, nil
}
