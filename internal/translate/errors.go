// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import "errors"

// Sentinel errors for the translation engine. Callers match them with
// errors.Is after the pipeline wraps them with positional detail.
var (
	// ErrInvalidSchema marks input that is well-formed JSON but not a
	// recognizable JSON Schema node.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrIncompatible marks a sub-schema that cannot be expressed in the
	// chosen dialect while the resolve method is panic.
	ErrIncompatible = errors.New("incompatible schema")

	// ErrInvalidOption marks a meaningless option combination, such as an
	// un-parseable path regex.
	ErrInvalidOption = errors.New("invalid option")
)
