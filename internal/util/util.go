// Package util provides the text helpers used to read free-text catalog fields.
package util

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and trims surrounding whitespace and quotes.
// Catalog text arrives in inconsistent case and is sometimes still quoted.
func Normalize(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), `"'`))
}

// ContainsAny reports whether the normalized form of s contains any of subs.
// subs are expected in lower case.
func ContainsAny(s string, subs ...string) bool {
	n := Normalize(s)
	if n == "" {
		return false
	}
	for _, sub := range subs {
		if sub != "" && strings.Contains(n, sub) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the normalized form of s contains every one of subs.
func ContainsAll(s string, subs ...string) bool {
	n := Normalize(s)
	if n == "" {
		return false
	}
	for _, sub := range subs {
		if !strings.Contains(n, sub) {
			return false
		}
	}
	return true
}

// HasWord reports whether any of words appears as a whole token of the
// normalized form of s. Tokens are runs of letters and digits, so "rn" matches
// "FMJ-RN" but not "Hornady".
func HasWord(s string, words ...string) bool {
	tokens := strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w {
				return true
			}
		}
	}
	return false
}

// IsBlank reports whether s carries no text once normalized.
func IsBlank(s string) bool {
	return Normalize(s) == ""
}
