package util

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// TruncateStringToMaxLength collapses each run of whitespace in s to a single space and truncates the
// result to at most maxChars runes, so that it fits on one line of an error message. A truncated string
// ends in "..." when maxChars leaves room for it.
func TruncateStringToMaxLength(s string, maxChars int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	if maxChars <= len(ellipsis) {
		return string(runes[:maxChars])
	}
	return string(runes[:maxChars-len(ellipsis)]) + ellipsis
}
