package query

import "unicode/utf8"

// RepairEncoding fixes queries that arrived as UTF-8 bytes misread as
// Latin-1 (e.g. "масло" rendered as "Ð¼Ð°Ñ..."). The repair re-encodes the
// runes as single bytes and decodes them as UTF-8; it is kept only when the
// result actually contains Cyrillic, otherwise the input is returned as is.
func RepairEncoding(q string) string {
	if HasCyrillic(q) {
		return q
	}
	hasHigh := false
	for _, r := range q {
		if r > 0x7F {
			hasHigh = true
		}
		if r > 0xFF {
			// Not representable in Latin-1, cannot be mojibake of this kind.
			return q
		}
	}
	if !hasHigh {
		return q
	}

	buf := make([]byte, 0, len(q))
	for _, r := range q {
		buf = append(buf, byte(r))
	}
	if !utf8.Valid(buf) {
		return q
	}
	fixed := string(buf)
	if !HasCyrillic(fixed) {
		return q
	}
	return fixed
}
