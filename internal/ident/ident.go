// Package ident converts Go identifiers into GraphQL field names.
package ident

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name is an identifier split into words.
type Name []string

// ParseMixedCaps splits a MixedCaps Go identifier into words, keeping
// initialisms together.
// E.g., "FullTableID" -> {"Full", "Table", "ID"}.
func ParseMixedCaps(name string) Name {
	var words Name

	runes := []rune(name)
	start := 0
	for i := 0; i < len(runes); i++ {
		endOfWord := false
		switch {
		case i+1 == len(runes):
			endOfWord = true
		case unicode.IsLower(runes[i]) && unicode.IsUpper(runes[i+1]):
			// lower -> Upper.
			endOfWord = true
		case i+2 < len(runes) && unicode.IsUpper(runes[i]) &&
			unicode.IsUpper(runes[i+1]) && unicode.IsLower(runes[i+2]):
			// Upper -> Upper,lower: an acronym followed by a word.
			// "IDs" is the plural of an initialism, not a boundary.
			endOfWord = string(runes[i:i+3]) != "IDs"
		}
		if !endOfWord {
			continue
		}

		word := string(runes[start : i+1])
		start = i + 1
		if initialism, ok := isInitialism(word); ok {
			words = append(words, initialism)
		} else if first, second, ok := isTwoInitialisms(word); ok {
			words = append(words, first, second)
		} else {
			words = append(words, word)
		}
	}
	return words
}

// ToLowerCamelCase joins words in lowerCamelCase, the naming used by the
// Monte Carlo API. Initialisms after the first word keep only their first
// letter upper-cased.
// E.g., {"Full", "Table", "ID"} -> "fullTableId".
func (n Name) ToLowerCamelCase() string {
	var b strings.Builder
	for i, word := range n {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(word[size:]))
	}
	return b.String()
}

// isInitialism reports whether word is an initialism, returning it in
// upper case.
func isInitialism(word string) (string, bool) {
	upper := strings.ToUpper(word)
	_, ok := initialisms[upper]
	return upper, ok
}

// isTwoInitialisms reports whether word is two initialisms written
// together, such as "DBID".
func isTwoInitialisms(word string) (string, string, bool) {
	upper := strings.ToUpper(word)
	if upper != word {
		return "", "", false
	}
	for i := 2; i <= len(upper)-2; i++ {
		_, first := initialisms[upper[:i]]
		_, second := initialisms[upper[i:]]
		if first && second {
			return upper[:i], upper[i:], true
		}
	}
	return "", "", false
}

var initialisms = map[string]struct{}{
	"ACL":   {},
	"API":   {},
	"ARN":   {},
	"ASCII": {},
	"AWS":   {},
	"BI":    {},
	"CPU":   {},
	"CSS":   {},
	"DB":    {},
	"DBT":   {},
	"DNS":   {},
	"EOF":   {},
	"GUID":  {},
	"HTML":  {},
	"HTTP":  {},
	"HTTPS": {},
	"ID":    {},
	"IP":    {},
	"JSON":  {},
	"MCON":  {},
	"QPS":   {},
	"RAM":   {},
	"RPC":   {},
	"SLA":   {},
	"SQL":   {},
	"SSH":   {},
	"SSO":   {},
	"TCP":   {},
	"TLS":   {},
	"TTL":   {},
	"UI":    {},
	"UID":   {},
	"URI":   {},
	"URL":   {},
	"UTF8":  {},
	"UUID":  {},
	"XML":   {},
}
