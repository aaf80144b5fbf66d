package query

import (
	"regexp"
	"strconv"
	"strings"
)

// numberUnitRe matches a decimal quantity (comma or period separator)
// optionally followed by a short volume/weight/count unit token.
var numberUnitRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(л|кг|мл|г|g|kg|ml|l|шт|pcs)?`)

// ExtractNumbers pulls quantity expressions out of q. It returns the
// residual text (re-normalized after removal) and the extracted magnitudes
// in left-to-right order. A token that fails to parse is still stripped from
// the text but contributes no magnitude: numeric filtering is a relevance
// bonus, not a correctness-critical filter.
func ExtractNumbers(q string) (string, []float64) {
	var numbers []float64
	cleaned := q
	for _, m := range numberUnitRe.FindAllStringSubmatch(q, -1) {
		cleaned = strings.Replace(cleaned, m[0], "", 1)
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return Normalize(cleaned), numbers
}
