package util

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeWhitespace trims and collapses whitespace to single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Fields splits s on whitespace without any other normalisation.
func Fields(s string) []string {
	return strings.Fields(s)
}

// FoldFields lower-cases s and splits it on whitespace.
func FoldFields(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
