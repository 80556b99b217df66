// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dacolabs/jst/internal/config"
	"github.com/dacolabs/jst/internal/jsonschema"
	"github.com/dacolabs/jst/internal/prompts"
	"github.com/dacolabs/jst/internal/translate"
)

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

type rootOptions struct {
	dialect               string
	resolve               string
	normalizeCase         bool
	forceNullable         bool
	tupleStruct           bool
	allowMapsWithoutValue bool
	jsonObjectPath        string
	output                string
	interactive           bool
	configPath            string
}

// NewRootCmd creates and returns the root command for the CLI. getenv is
// passed in so the environment lookup can be stubbed in tests.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jst [schema-file]",
		Short: "Transpile JSON Schema into Avro or BigQuery table schemas",
		Long: fmt.Sprintf(`Transpile a JSON Schema document into a target analytical schema.

The schema is read from the file argument, or from standard input when no
argument is given. The result is written to standard output as
pretty-printed JSON.

Available dialects: %s`, strings.Join(translate.Available(), ", ")),
		Example: `  # Translate a schema to Avro
  jst --type avro schema.json

  # Translate from stdin to BigQuery, snake-casing field names
  cat schema.json | jst --type bigquery --normalize-case

  # Fail instead of casting incompatible sub-schemas
  jst --type bigquery --resolve panic schema.json

  # Pick the dialect and options interactively
  jst --interactive schema.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts, getenv)
		},
	}

	cmd.Flags().StringVar(&opts.dialect, "type", "avro",
		fmt.Sprintf("Output dialect (%s)", strings.Join(translate.Available(), ", ")))
	cmd.Flags().StringVar(&opts.resolve, "resolve", "cast", "Incompatibility strategy (cast, drop, panic)")
	cmd.Flags().BoolVar(&opts.normalizeCase, "normalize-case", false, "Rewrite field names to snake_case")
	cmd.Flags().BoolVar(&opts.forceNullable, "force-nullable", false, "Mark every non-root column nullable")
	cmd.Flags().BoolVar(&opts.tupleStruct, "tuple-struct", false, "Treat positional tuple validation as an anonymous record")
	cmd.Flags().BoolVar(&opts.allowMapsWithoutValue, "allow-maps-without-value", false, "Emit maps lacking a concrete value schema")
	cmd.Flags().StringVar(&opts.jsonObjectPath, "json-object-path", "", "Dotted-path regex; matching sub-trees become opaque JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick dialect and options interactively")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file with option defaults (default .jst.yaml)")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions, getenv func(string) string) error {
	if err := applyConfigDefaults(cmd, opts, getenv); err != nil {
		return err
	}

	if opts.interactive {
		form := prompts.TranslateOptions{
			Dialect:               opts.dialect,
			Resolve:               opts.resolve,
			NormalizeCase:         opts.normalizeCase,
			ForceNullable:         opts.forceNullable,
			TupleStruct:           opts.tupleStruct,
			AllowMapsWithoutValue: opts.allowMapsWithoutValue,
		}
		if err := prompts.RunTranslateForm(&form, translate.Available()); err != nil {
			return err
		}
		opts.dialect = form.Dialect
		opts.resolve = form.Resolve
		opts.normalizeCase = form.NormalizeCase
		opts.forceNullable = form.ForceNullable
		opts.tupleStruct = form.TupleStruct
		opts.allowMapsWithoutValue = form.AllowMapsWithoutValue
	}

	resolve, err := translate.ParseResolveMethod(opts.resolve)
	if err != nil {
		return err
	}
	ctx := translate.Context{
		Resolve:               resolve,
		NormalizeCase:         opts.normalizeCase,
		ForceNullable:         opts.forceNullable,
		TupleStruct:           opts.tupleStruct,
		AllowMapsWithoutValue: opts.allowMapsWithoutValue,
	}
	if err := ctx.CompileJSONPath(opts.jsonObjectPath); err != nil {
		return err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out, err := translate.Schema(input, opts.dialect, ctx)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o600); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(opts.output))
		return nil
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return jsonschema.Read(cmd.InOrStdin(), "")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return jsonschema.Read(f, args[0])
}

// applyConfigDefaults loads the project config and fills in every option
// the user did not set on the command line.
func applyConfigDefaults(cmd *cobra.Command, opts *rootOptions, getenv func(string) string) error {
	path := opts.configPath
	if path == "" {
		path = getenv("JST_CONFIG")
	}
	explicit := path != ""
	if path == "" {
		path = config.DefaultFileName
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("type") && cfg.Type != "" {
		opts.dialect = cfg.Type
	}
	if !flags.Changed("resolve") && cfg.Resolve != "" {
		opts.resolve = cfg.Resolve
	}
	if !flags.Changed("normalize-case") && cfg.NormalizeCase {
		opts.normalizeCase = true
	}
	if !flags.Changed("force-nullable") && cfg.ForceNullable {
		opts.forceNullable = true
	}
	if !flags.Changed("tuple-struct") && cfg.TupleStruct {
		opts.tupleStruct = true
	}
	if !flags.Changed("allow-maps-without-value") && cfg.AllowMapsWithoutValue {
		opts.allowMapsWithoutValue = true
	}
	if !flags.Changed("json-object-path") && cfg.JSONObjectPath != "" {
		opts.jsonObjectPath = cfg.JSONObjectPath
	}
	return nil
}
