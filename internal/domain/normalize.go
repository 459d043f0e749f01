package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeAuthorName prepares an author name for storage and lookup.
// Author names are case-sensitive: only leading/trailing whitespace is removed.
func NormalizeAuthorName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeCategoryName prepares a category name for storage and lookup:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//
// Categories are unique case-insensitively and always stored lowercase.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTypeName prepares a book type name for lookup.
func NormalizeTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateText rejects values PostgreSQL cannot store in a text column:
// invalid UTF-8 and NUL bytes.
func ValidateText(field, value string) error {
	if !utf8.ValidString(value) || strings.IndexByte(value, 0) >= 0 {
		return invalidTextError(field, value)
	}
	return nil
}

// charLen counts characters (runes), not bytes.
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}
