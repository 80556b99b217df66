// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

//go:build casingregex

package normalize

import (
	"regexp"
	"strings"
)

var (
	snakeSymbols    = regexp.MustCompile(`[^A-Za-z0-9]+`)
	snakeLowerUpper = regexp.MustCompile(`([a-z])([A-Z])`)
	snakeUpperRun   = regexp.MustCompile(`([A-Z0-9])([A-Z][a-z])`)
)

// snakeCase is the regex-backed splitter. It must agree with the scanner
// back-end on ASCII input.
func snakeCase(s string) string {
	s = snakeSymbols.ReplaceAllString(s, "_")
	s = snakeLowerUpper.ReplaceAllString(s, "${1}_${2}")
	s = snakeUpperRun.ReplaceAllString(s, "${1}_${2}")
	return finishSnake(strings.ToLower(s))
}
