// Package naming derives task and scope names from user-chosen names.
package naming

import (
	"unicode"
	"unicode/utf8"
)

// CapitalizeFirst upper-cases the first rune of s and leaves the rest alone,
// so "integrationTest" becomes "IntegrationTest".
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Derive builds prefix + CapitalizeFirst(name) + suffix. An empty prefix
// leaves name uncapitalized, matching the usual lowerCamel task names.
func Derive(prefix, name, suffix string) string {
	if prefix == "" {
		return name + suffix
	}
	return prefix + CapitalizeFirst(name) + suffix
}
