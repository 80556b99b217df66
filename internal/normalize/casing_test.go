// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The corpus exercises the word-boundary rules both casing back-ends must
// agree on: run `go test` with and without the casingregex build tag.
func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// one word
		{"Aa", "aa"},
		// two words
		{"aA", "a_a"},
		// underscores are word boundaries
		{"_a__a_", "a_a"},
		// mnemonics are considered words
		{"RAM", "ram"},
		{"HTTPServer", "http_server"},
		{"PIIData", "pii_data"},
		// camel and pascal casing
		{"fooBar", "foo_bar"},
		{"FooBar", "foo_bar"},
		{"test_snake_case", "test_snake_case"},
		{"testCamelCase", "test_camel_case"},
		{"TestPascalCase", "test_pascal_case"},
		{"TEST_SCREAMING_SNAKE_CASE", "test_screaming_snake_case"},
		// digits take the case of the surrounding letters
		{"a7aAa", "a7a_aa"},
		{"A7AAa", "a7a_aa"},
		{"a7Aa", "a7_aa"},
		// separators collapse
		{"kebab-case-name", "kebab_case_name"},
		{"dotted.path.name", "dotted_path_name"},
		{"  spaced  out  ", "spaced_out"},
		// identifiers may not start with a digit or be empty
		{"7days", "_7days"},
		{"--", "_"},
		{"", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestSnakeCase_Idempotent(t *testing.T) {
	inputs := []string{"HTTPServer", "fooBar", "a7aAa", "already_snake", "_7days"}
	for _, in := range inputs {
		once := SnakeCase(in)
		assert.Equal(t, once, SnakeCase(once), "input %q", in)
	}
}
