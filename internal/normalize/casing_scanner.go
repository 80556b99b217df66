// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

//go:build !casingregex

package normalize

import "strings"

// snakeCase is the hand-rolled scanner back-end.
func snakeCase(s string) string {
	chunks := strings.FieldsFunc(s, func(r rune) bool {
		return !isASCIIAlnum(r)
	})

	var words []string
	for _, chunk := range chunks {
		words = append(words, splitCaseBoundaries(chunk)...)
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return finishSnake(strings.Join(words, "_"))
}

// splitCaseBoundaries splits before every uppercase letter that is
// preceded by a lowercase letter or followed by one.
func splitCaseBoundaries(chunk string) []string {
	var words []string
	start := 0
	for i := 1; i < len(chunk); i++ {
		if !isASCIIUpper(chunk[i]) {
			continue
		}
		if isASCIILower(chunk[i-1]) || (i+1 < len(chunk) && isASCIILower(chunk[i+1])) {
			words = append(words, chunk[start:i])
			start = i
		}
	}
	return append(words, chunk[start:])
}
