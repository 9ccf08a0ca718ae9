package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeText reduces a string to a case- and punctuation-insensitive
// comparison key: lowercased with everything outside ASCII [a-z0-9] stripped,
// whitespace included. Two values are considered equivalent iff their keys
// are identical. No Unicode folding beyond the ASCII filter.
func normalizeText(s string) string {
	return nonAlnumRegex.ReplaceAllString(strings.ToLower(s), "")
}
