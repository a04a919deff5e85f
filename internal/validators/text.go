package validators

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxNotesLength   = 1000
	MaxCommentLength = 1000
)

// WithinLength counts runes, not bytes.
func WithinLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func InRange(v, min, max int) bool {
	return v >= min && v <= max
}
