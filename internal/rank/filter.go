// Package rank trims the engine's deliberately over-permissive candidate
// list back toward precision. Filtering is subtractive: survivors keep the
// engine's original order and are never re-sorted.
package rank

import (
	"strings"
	"unicode/utf8"

	"github.com/kupisearch/kupisearch/internal/domain"
)

const (
	// shortQueryMaxLen is the query length (in runes) at or below which the
	// softer prefix-only acceptance rules apply.
	shortQueryMaxLen = 2

	// scoreFloor is the permissive catch-all: a hit above it stays even when
	// no lexical signal matched.
	scoreFloor = 0.1
)

// Stage names the fallback ladder step that produced the final list.
type Stage string

const (
	// StageFiltered means relevance checks alone filled the result list.
	StageFiltered Stage = "filtered"
	// StageBackfill means raw candidates topped up an under-filled list.
	StageBackfill Stage = "backfill"
	// StageRaw means the filter rejected everything and the raw top-k was
	// returned instead.
	StageRaw Stage = "raw"
)

// Outcome describes how the final result list was assembled.
type Outcome struct {
	Stage      Stage
	Accepted   int
	Backfilled int
}

// FilterNoise removes low-relevance hits and guarantees a bounded,
// non-empty-if-possible result list. See Filter for the full contract.
func FilterNoise(hits []domain.Hit, query string, topK int) []domain.Hit {
	out, _ := Filter(hits, query, topK)
	return out
}

// Filter applies the relevance checks to hits in engine order, stopping once
// topK hits are accepted, then walks the fallback ladder: if nothing was
// accepted the raw top-k is returned; if fewer than topK were accepted the
// list is backfilled from the remaining candidates in original order. An
// empty result is possible only when hits is empty. The ladder trades
// precision for availability on purpose: an imperfect match beats an empty
// response.
func Filter(hits []domain.Hit, query string, topK int) ([]domain.Hit, Outcome) {
	if len(hits) == 0 {
		return nil, Outcome{Stage: StageFiltered}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := head(hits, topK)
		return out, Outcome{Stage: StageFiltered, Accepted: len(out)}
	}

	queryWords := wordSet(q)
	isShort := utf8.RuneCountInString(q) <= shortQueryMaxLen

	kept := make([]domain.Hit, 0, topK)
	picked := make(map[int]bool, topK)
	for i, h := range hits {
		if len(kept) >= topK {
			break
		}
		if accept(h, q, queryWords, isShort) {
			kept = append(kept, h)
			picked[i] = true
		}
	}

	if len(kept) == 0 {
		out := head(hits, topK)
		return out, Outcome{Stage: StageRaw}
	}

	accepted := len(kept)
	if len(kept) < topK {
		for i, h := range hits {
			if len(kept) >= topK {
				break
			}
			if picked[i] {
				continue
			}
			kept = append(kept, h)
		}
	}

	outcome := Outcome{Stage: StageFiltered, Accepted: accepted, Backfilled: len(kept) - accepted}
	if outcome.Backfilled > 0 {
		outcome.Stage = StageBackfill
	}
	return kept, outcome
}

// accept decides whether a single candidate survives filtering.
func accept(h domain.Hit, q string, queryWords map[string]struct{}, isShort bool) bool {
	name := strings.ToLower(h.Product.Name)
	category := strings.ToLower(h.Product.Category)
	brand := strings.ToLower(h.Product.Brand)
	keywords := strings.ToLower(h.Product.Keywords)
	searchText := strings.ToLower(h.Product.SearchText)

	keywordTokens := strings.Fields(keywords)

	if isShort {
		// A 1-2 rune query carries too little signal for word matching;
		// require a prefix or substring relationship instead.
		if strings.HasPrefix(name, q) ||
			strings.HasPrefix(brand, q) ||
			strings.HasPrefix(category, q) ||
			anyHasPrefix(keywordTokens, q) ||
			strings.Contains(searchText, q) {
			return true
		}
		return false
	}

	docWords := wordSet(name)
	addWords(docWords, category)
	addWords(docWords, brand)
	addWords(docWords, keywords)
	if intersects(queryWords, docWords) {
		return true
	}
	if strings.HasPrefix(name, q) ||
		strings.HasPrefix(brand, q) ||
		anyHasPrefix(keywordTokens, q) ||
		strings.Contains(searchText, q) {
		return true
	}
	if h.Score > scoreFloor {
		return true
	}
	// Last resort: any positively scored hit may stay.
	return h.Score > 0
}

func head(hits []domain.Hit, n int) []domain.Hit {
	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]domain.Hit, len(hits))
	copy(out, hits)
	return out
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func addWords(set map[string]struct{}, s string) {
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
}

func intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for w := range a {
		if _, ok := b[w]; ok {
			return true
		}
	}
	return false
}

func anyHasPrefix(tokens []string, q string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, q) {
			return true
		}
	}
	return false
}
