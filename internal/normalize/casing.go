// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package normalize

import "strings"

// SnakeCase rewrites an identifier into snake_case. Word boundaries are
// runs of non-alphanumeric characters plus case transitions: a split
// happens before every uppercase letter that is preceded by a lowercase
// letter or followed by one, so HTTPServer becomes http_server and
// PIIData becomes pii_data. Two back-ends implement the splitter; the
// casingregex build tag selects the regex-backed one. Both must produce
// identical output on ASCII input.
func SnakeCase(s string) string {
	return snakeCase(s)
}

// finishSnake collapses runs of underscores, trims them from the ends,
// and guards identifiers that would be empty or start with a digit.
func finishSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteByte(s[i])
	}
	out := b.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "_" + out
	}
	return out
}

func isASCIILower(c byte) bool { return c >= 'a' && c <= 'z' }
func isASCIIUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
