// Package plan assembles the weighted disjunctive search request sent to the
// engine. The builder maximizes recall for short, noisy, multi-script
// queries and layers relevance boosts so the best intent-matching clause
// dominates ranking; precision is restored downstream by the noise filter.
package plan

import (
	"strings"
	"unicode/utf8"
)

// Input carries the processed query parts the builder consumes.
type Input struct {
	// Query is the residual lexical query: normalized, layout-corrected,
	// with quantity expressions stripped.
	Query string
	// Collapsed is the residual of the space-collapsed alternate. Empty or
	// equal to Query when no alternate applies.
	Collapsed string
	// Numbers are the extracted quantity magnitudes.
	Numbers []float64
	// TopK is the number of results the caller ultimately wants.
	TopK int
	// PerWordCap bounds per-word clause generation; 0 means DefaultPerWordCap.
	PerWordCap int
}

// Request is the engine search payload.
type Request struct {
	Size  int            `json:"size"`
	Query BoolWrapper    `json:"query"`
	Aggs  map[string]any `json:"aggs,omitempty"`
}

// BoolWrapper nests the bool query under its DSL key.
type BoolWrapper struct {
	Bool BoolQuery `json:"bool"`
}

// BoolQuery is a disjunction: a hit must satisfy at least one clause.
type BoolQuery struct {
	Should             []Clause `json:"should"`
	MinimumShouldMatch int      `json:"minimum_should_match"`
}

// Build assembles the search request. An empty lexical query still produces
// a valid request: it degrades to numeric range clauses only, or to an empty
// should list, which the engine treats as matching nothing.
func Build(in Input) *Request {
	q := in.Query
	qLen := utf8.RuneCountInString(q)
	isShort := qLen <= shortQueryMaxLen

	var should []Clause

	if q != "" {
		fuzziness := "AUTO"
		if isShort {
			// Fuzzy expansion of a 1-2 rune term matches half the index.
			fuzziness = "0"
		}
		should = append(should,
			multiMatchFuzzy(q, primaryFields, fuzziness, 1),
			multiMatch(q, boolPrefixFields, "bool_prefix"),
		)

		if qLen >= keywordPrefixMinLen {
			should = append(should,
				prefix("name.keyword", q, boostKeywordNamePrefix),
				prefix("brand.keyword", q, boostKeywordBrandPrefix),
				prefix("keywords", q, boostKeywordsPrefix),
			)
		}

		// Layout-corrected index fields catch wrong-layout queries that the
		// client-side corrector was too conservative to touch.
		should = append(should, multiMatch(q, layoutFields, "best_fields"))
	}

	if q != "" && in.Collapsed != "" && in.Collapsed != q &&
		utf8.RuneCountInString(in.Collapsed) >= collapsedMinLen {
		should = append(should,
			multiMatchFuzzyNoPrefix(in.Collapsed, collapsedFields, "AUTO"),
			matchPhrasePrefix("name", in.Collapsed, boostCollapsedPhrase),
		)
	}

	if q != "" && isShort {
		// Short tokens need aggressive prefix matching to surface anything.
		should = append(should,
			matchPhrasePrefix("name", q, boostShortPhrasePrefix),
			wildcard("name.keyword", q+"*", boostShortNameWildcard),
			wildcard("brand.keyword", q+"*", boostShortBrandWildcard),
			prefix("name", q, boostShortNamePrefix),
			prefix("brand", q, boostShortBrandPrefix),
		)
	}

	if q != "" {
		should = append(should, multiWordClauses(q, in.PerWordCap)...)
	}

	for _, n := range in.Numbers {
		should = append(should, numericRange(
			"weight_value", n*(1-weightTolerance), n*(1+weightTolerance), boostWeightRange,
		))
	}

	return &Request{
		Size: in.TopK * CandidateMultiplier,
		Query: BoolWrapper{
			Bool: BoolQuery{Should: should, MinimumShouldMatch: 1},
		},
		Aggs: categoryAgg(),
	}
}

// multiWordClauses emits the clause set for multi-word queries: an
// all-words-required clause (highest confidence), an any-word clause (looser
// recall), and per-word match/prefix/wildcard clauses so any single strong
// word can rescue a query whose combined phrase scores poorly.
func multiWordClauses(q string, maxWords int) []Clause {
	words := strings.Fields(q)
	if len(words) < 2 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = DefaultPerWordCap
	}

	clauses := []Clause{
		matchOperator("search_text", q, "and", boostAllWordsMatch),
		matchOperator("search_text", q, "or", boostAnyWordMatch),
	}

	emitted := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) < perWordMinLen {
			continue
		}
		if emitted >= maxWords {
			break
		}
		emitted++
		clauses = append(clauses,
			match("search_text", w, boostPerWordMatch),
			prefix("name", w, boostPerWordNamePrefix),
			prefix("brand", w, boostPerWordBrandPrefix),
			prefix("brand.keyword", w, boostPerWordBrandKeyword),
			prefix("keywords", w, boostPerWordKeywords),
			wildcard("name.keyword", w+"*", boostPerWordNameWildcard),
			wildcard("brand.keyword", w+"*", boostPerWordBrandWild),
		)
	}
	return clauses
}

// categoryAgg buckets candidates by category. Purely a diagnostic signal for
// noise detection; it never gates results.
func categoryAgg() map[string]any {
	return map[string]any{
		"categories": map[string]any{
			"terms": map[string]any{
				"field": "category.keyword",
				"size":  categoryAggBuckets,
			},
		},
	}
}
