// Package query implements the text heuristics that turn a raw user string
// into something the plan builder can work with: whitespace normalization,
// keyboard layout correction, space-collapse for split words, numeric-unit
// extraction, and mojibake repair.
package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// collapseMaxLen is the longest query (in runes, spaces included) the
	// space-collapse heuristic will touch. Longer queries are assumed to be
	// genuinely multi-word.
	collapseMaxLen = 20
	// collapseMinResult is the shortest collapsed token worth keeping.
	collapseMinResult = 3
)

// Normalize trims the string and collapses internal whitespace runs to a
// single space. Case is preserved.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HasCyrillic reports whether s contains at least one Cyrillic letter.
func HasCyrillic(s string) bool {
	for _, r := range s {
		if IsCyrillic(r) {
			return true
		}
	}
	return false
}

// IsCyrillic reports whether r is a Russian Cyrillic letter (а-я, ё) in
// either case.
func IsCyrillic(r rune) bool {
	lr := unicode.ToLower(r)
	return (lr >= 'а' && lr <= 'я') || lr == 'ё'
}

// CollapseSpaces reconstructs a word accidentally split by stray spaces
// ("кар тофель" -> "картофель"). It only fires on short Cyrillic queries;
// everything else is returned unchanged.
func CollapseSpaces(q string) string {
	if utf8.RuneCountInString(q) > collapseMaxLen || !HasCyrillic(q) {
		return q
	}
	noSpaces := strings.ReplaceAll(q, " ", "")
	if utf8.RuneCountInString(noSpaces) >= collapseMinResult {
		return noSpaces
	}
	return q
}
