// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"regexp"
)

// ResolveMethod selects what happens when a sub-schema cannot be
// expressed in the chosen dialect.
type ResolveMethod int

const (
	// ResolveCast keeps the lattice fallback and renders the offending
	// sub-tree as an opaque column.
	ResolveCast ResolveMethod = iota
	// ResolveDrop omits the offending field from its parent record.
	ResolveDrop
	// ResolvePanic fails the translation with ErrIncompatible.
	ResolvePanic
)

// String returns the flag spelling of the method.
func (m ResolveMethod) String() string {
	switch m {
	case ResolveCast:
		return "cast"
	case ResolveDrop:
		return "drop"
	case ResolvePanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ParseResolveMethod parses the flag spelling of a resolve method.
func ParseResolveMethod(s string) (ResolveMethod, error) {
	switch s {
	case "cast", "":
		return ResolveCast, nil
	case "drop":
		return ResolveDrop, nil
	case "panic":
		return ResolvePanic, nil
	default:
		return ResolveCast, fmt.Errorf("%w: resolve method %q", ErrInvalidOption, s)
	}
}

// Context carries the options that steer a translation. The zero value is
// the default behavior: cast incompatibilities, keep field casing, honor
// the schema's nullability, fold positional tuple items into an array of
// their union, and settle value-less maps by the resolve method.
type Context struct {
	Resolve               ResolveMethod
	NormalizeCase         bool
	ForceNullable         bool
	TupleStruct           bool
	AllowMapsWithoutValue bool

	// JSONObjectPath matches dotted tag paths (post-normalization names,
	// rooted at "root") whose sub-trees become opaque JSON.
	JSONObjectPath *regexp.Regexp
}

// CompileJSONPath compiles and installs the opaque-JSON path regex. An
// empty expression clears it.
func (c *Context) CompileJSONPath(expr string) error {
	if expr == "" {
		c.JSONObjectPath = nil
		return nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("%w: json object path regex: %v", ErrInvalidOption, err)
	}
	c.JSONObjectPath = re
	return nil
}
