// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package prompts contains the interactive forms for the CLI.
package prompts

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// TranslateOptions is the mutable state the translate form edits. Fields
// arrive pre-filled with flag or config values and leave with the user's
// choices.
type TranslateOptions struct {
	Dialect               string
	Resolve               string
	NormalizeCase         bool
	ForceNullable         bool
	TupleStruct           bool
	AllowMapsWithoutValue bool
}

// RunTranslateForm runs the interactive form for picking the target
// dialect and translation options.
func RunTranslateForm(opts *TranslateOptions, dialects []string) error {
	dialectOptions := make([]huh.Option[string], 0, len(dialects))
	for _, d := range dialects {
		dialectOptions = append(dialectOptions, huh.NewOption(d, d))
	}

	var toggles []string
	if opts.NormalizeCase {
		toggles = append(toggles, "normalize-case")
	}
	if opts.ForceNullable {
		toggles = append(toggles, "force-nullable")
	}
	if opts.TupleStruct {
		toggles = append(toggles, "tuple-struct")
	}
	if opts.AllowMapsWithoutValue {
		toggles = append(toggles, "allow-maps-without-value")
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Target dialect").
				Options(dialectOptions...).
				Value(&opts.Dialect),
			huh.NewSelect[string]().
				Title("Incompatibility resolution").
				Description("What to do when a sub-schema has no representation in the target").
				Options(
					huh.NewOption("cast to an opaque column", "cast"),
					huh.NewOption("drop the offending field", "drop"),
					huh.NewOption("fail the translation", "panic"),
				).
				Value(&opts.Resolve),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(
					huh.NewOption("Normalize field names to snake_case", "normalize-case"),
					huh.NewOption("Force every column nullable", "force-nullable"),
					huh.NewOption("Treat tuple validation as a record", "tuple-struct"),
					huh.NewOption("Allow maps without a value schema", "allow-maps-without-value"),
				).
				Value(&toggles),
		),
	).Run(); err != nil {
		return err
	}

	opts.NormalizeCase = slices.Contains(toggles, "normalize-case")
	opts.ForceNullable = slices.Contains(toggles, "force-nullable")
	opts.TupleStruct = slices.Contains(toggles, "tuple-struct")
	opts.AllowMapsWithoutValue = slices.Contains(toggles, "allow-maps-without-value")
	return nil
}
