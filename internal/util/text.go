package util

import "strings"

// CollapseWhitespace replaces every run of whitespace (including newlines)
// with a single space and trims the ends. Documents arrive with arbitrary
// line wrapping; sentence segmentation works on the flattened text.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SanitizeText strips invalid UTF-8 sequences and NUL bytes so values can
// be stored in Postgres text columns.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
