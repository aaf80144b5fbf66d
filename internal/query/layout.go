package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// layoutFixMaxLen is the longest query (in runes) eligible for keyboard
// layout correction. At longer lengths real English and transliterated words
// dominate, so correction is restricted to very short prefixes.
const layoutFixMaxLen = 3

// qwertyToCyrillic maps QWERTY key positions to the letters they produce on
// the ЙЦУКЕН layout. Punctuation keys are included because they sit on
// letter positions of the Cyrillic layout.
var qwertyToCyrillic = map[rune]rune{
	'q': 'й', 'w': 'ц', 'e': 'у', 'r': 'к', 't': 'е', 'y': 'н', 'u': 'г', 'i': 'ш', 'o': 'щ', 'p': 'з',
	'[': 'х', ']': 'ъ', 'a': 'ф', 's': 'ы', 'd': 'в', 'f': 'а', 'g': 'п', 'h': 'р', 'j': 'о', 'k': 'л',
	'l': 'д', ';': 'ж', '\'': 'э', 'z': 'я', 'x': 'ч', 'c': 'с', 'v': 'м', 'b': 'и', 'n': 'т', 'm': 'ь',
	',': 'б', '.': 'ю',
	'Q': 'Й', 'W': 'Ц', 'E': 'У', 'R': 'К', 'T': 'Е', 'Y': 'Н', 'U': 'Г', 'I': 'Ш', 'O': 'Щ', 'P': 'З',
	'A': 'Ф', 'S': 'Ы', 'D': 'В', 'F': 'А', 'G': 'П', 'H': 'Р', 'J': 'О', 'K': 'Л',
	'L': 'Д', 'Z': 'Я', 'X': 'Ч', 'C': 'С', 'V': 'М', 'B': 'И', 'N': 'Т', 'M': 'Ь',
}

// commonShortWords are short Latin words that must never be remapped even
// though every character is on a mappable key.
var commonShortWords = map[string]struct{}{
	"a": {}, "an": {}, "at": {}, "as": {}, "am": {}, "be": {}, "by": {}, "do": {},
	"go": {}, "he": {}, "if": {}, "in": {}, "is": {}, "it": {}, "me": {}, "my": {},
	"no": {}, "of": {}, "on": {}, "or": {}, "so": {}, "to": {}, "up": {}, "us": {},
	"we": {}, "pr": {}, "ma": {},
}

// FixLayout repairs a query typed with a Latin layout when Cyrillic output
// was intended. Correction is all-or-nothing character substitution and only
// fires when the query is at most 3 runes long, contains no Cyrillic, every
// alphabetic character maps under the table, and the lower-cased query is
// not a common short Latin word. The second return value reports whether a
// correction was applied.
func FixLayout(text string) (string, bool) {
	var latinMapped, cyrillic, allLetters int
	for _, r := range text {
		if IsCyrillic(r) {
			cyrillic++
		}
		if unicode.IsLetter(r) {
			allLetters++
			if _, ok := qwertyToCyrillic[unicode.ToLower(r)]; ok && !IsCyrillic(r) {
				latinMapped++
			}
		}
	}

	// Cyrillic input means the user typed what they meant.
	if cyrillic > 0 {
		return text, false
	}
	if latinMapped == 0 || allLetters == 0 {
		return text, false
	}

	textLower := strings.ToLower(strings.TrimSpace(text))
	if utf8.RuneCountInString(textLower) > layoutFixMaxLen {
		return text, false
	}
	if _, ok := commonShortWords[textLower]; ok {
		return text, false
	}
	if latinMapped != allLetters {
		return text, false
	}

	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		if mapped, ok := qwertyToCyrillic[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String(), true
}
