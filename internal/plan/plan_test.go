package plan

import (
	"strings"
	"testing"
)

// clauseKind returns the single DSL key of a clause ("multi_match",
// "prefix", ...).
func clauseKind(c Clause) string {
	for k := range c {
		return k
	}
	return ""
}

func countKind(clauses []Clause, kind string) int {
	n := 0
	for _, c := range clauses {
		if clauseKind(c) == kind {
			n++
		}
	}
	return n
}

func TestBuildSize(t *testing.T) {
	req := Build(Input{Query: "йогурт", TopK: 5})
	if req.Size != 15 {
		t.Errorf("Size = %d, want %d", req.Size, 15)
	}
	if req.Query.Bool.MinimumShouldMatch != 1 {
		t.Errorf("MinimumShouldMatch = %d, want 1", req.Query.Bool.MinimumShouldMatch)
	}
	if req.Aggs == nil {
		t.Error("expected category aggregation")
	}
}

func TestBuildSingleWord(t *testing.T) {
	req := Build(Input{Query: "йогурт", TopK: 5})
	should := req.Query.Bool.Should
	if len(should) == 0 {
		t.Fatal("expected clauses for a non-empty query")
	}

	// First clause is the fuzzy multi_match over the primary fields.
	mm, ok := should[0]["multi_match"].(map[string]any)
	if !ok {
		t.Fatalf("first clause is %v, want multi_match", should[0])
	}
	if mm["query"] != "йогурт" {
		t.Errorf("primary clause query = %v, want йогурт", mm["query"])
	}
	if mm["fuzziness"] != "AUTO" {
		t.Errorf("fuzziness = %v, want AUTO for a long query", mm["fuzziness"])
	}
	if mm["prefix_length"] != 1 {
		t.Errorf("prefix_length = %v, want 1", mm["prefix_length"])
	}
	fields, _ := mm["fields"].([]string)
	if len(fields) == 0 || fields[0] != "name^3" {
		t.Errorf("primary fields = %v, want name^3 first", fields)
	}

	// Keyword prefix clauses fire for queries of two or more runes.
	if got := countKind(should, "prefix"); got != 3 {
		t.Errorf("prefix clause count = %d, want 3", got)
	}

	// Single word: no multi-word clause set.
	for _, c := range should {
		if m, ok := c["match"].(map[string]any); ok {
			t.Errorf("unexpected match clause for single-word query: %v", m)
		}
	}
}

func TestBuildShortQuery(t *testing.T) {
	req := Build(Input{Query: "1", TopK: 5})
	should := req.Query.Bool.Should

	mm := should[0]["multi_match"].(map[string]any)
	if mm["fuzziness"] != "0" {
		t.Errorf("fuzziness = %v, want 0 for a short query", mm["fuzziness"])
	}

	// Short queries add wildcard clauses with a trailing star.
	var wildcards []string
	for _, c := range should {
		wc, ok := c["wildcard"].(map[string]any)
		if !ok {
			continue
		}
		for _, v := range wc {
			wildcards = append(wildcards, v.(map[string]any)["value"].(string))
		}
	}
	if len(wildcards) != 2 {
		t.Fatalf("wildcard clause count = %d, want 2", len(wildcards))
	}
	for _, w := range wildcards {
		if w != "1*" {
			t.Errorf("wildcard value = %q, want %q", w, "1*")
		}
	}

	// Single rune: keyword prefix trio is skipped, short prefix pair fires.
	if got := countKind(should, "prefix"); got != 2 {
		t.Errorf("prefix clause count = %d, want 2", got)
	}
}

func TestBuildCollapsedAlternate(t *testing.T) {
	req := Build(Input{Query: "кар тофель", Collapsed: "картофель", TopK: 5})
	should := req.Query.Bool.Should

	found := false
	for _, c := range should {
		mm, ok := c["multi_match"].(map[string]any)
		if ok && mm["query"] == "картофель" {
			found = true
		}
	}
	if !found {
		t.Error("expected a multi_match clause for the collapsed alternate")
	}

	if got := countKind(should, "match_phrase_prefix"); got != 1 {
		t.Errorf("match_phrase_prefix count = %d, want 1", got)
	}
}

func TestBuildCollapsedEqualToQuerySkipped(t *testing.T) {
	base := Build(Input{Query: "картофель", TopK: 5})
	same := Build(Input{Query: "картофель", Collapsed: "картофель", TopK: 5})
	if len(same.Query.Bool.Should) != len(base.Query.Bool.Should) {
		t.Errorf("collapsed equal to query added clauses: %d vs %d",
			len(same.Query.Bool.Should), len(base.Query.Bool.Should))
	}
}

func TestBuildMultiWord(t *testing.T) {
	req := Build(Input{Query: "молоко домик", TopK: 5})
	should := req.Query.Bool.Should

	var andSeen, orSeen bool
	for _, c := range should {
		m, ok := c["match"].(map[string]any)
		if !ok {
			continue
		}
		st, ok := m["search_text"].(map[string]any)
		if !ok {
			continue
		}
		switch st["operator"] {
		case "and":
			andSeen = true
		case "or":
			orSeen = true
		}
	}
	if !andSeen || !orSeen {
		t.Errorf("multi-word query missing operator clauses: and=%v or=%v", andSeen, orSeen)
	}
}

func TestBuildPerWordCap(t *testing.T) {
	words := make([]string, 12)
	for i := range words {
		words[i] = "слово"
	}
	q := strings.Join(words, " ")

	capped := Build(Input{Query: q, TopK: 5, PerWordCap: 2})
	uncapped := Build(Input{Query: q, TopK: 5})

	// Each per-word set is 7 clauses; 2 words capped vs 8 by default.
	diff := len(uncapped.Query.Bool.Should) - len(capped.Query.Bool.Should)
	if diff != 6*7 {
		t.Errorf("clause count difference = %d, want %d", diff, 6*7)
	}
}

func TestBuildPerWordSkipsSingleRuneWords(t *testing.T) {
	req := Build(Input{Query: "молоко с", TopK: 5})
	for _, c := range req.Query.Bool.Should {
		m, ok := c["match"].(map[string]any)
		if !ok {
			continue
		}
		st, ok := m["search_text"].(map[string]any)
		if !ok || st["operator"] != nil {
			continue
		}
		if st["query"] == "с" {
			t.Error("single-rune word received a per-word clause")
		}
	}
}

func TestBuildNumericRange(t *testing.T) {
	req := Build(Input{Query: "молоко", Numbers: []float64{2.5}, TopK: 5})

	var found map[string]any
	for _, c := range req.Query.Bool.Should {
		if rc, ok := c["range"].(map[string]any); ok {
			found = rc["weight_value"].(map[string]any)
		}
	}
	if found == nil {
		t.Fatal("expected a range clause on weight_value")
	}
	if gte := found["gte"].(float64); gte != 2.0 {
		t.Errorf("gte = %v, want 2.0", gte)
	}
	if lte := found["lte"].(float64); lte != 3.0 {
		t.Errorf("lte = %v, want 3.0", lte)
	}
}

func TestBuildEmptyQueryDegrades(t *testing.T) {
	req := Build(Input{Query: "", Numbers: []float64{1}, TopK: 5})
	should := req.Query.Bool.Should
	if len(should) != 1 {
		t.Fatalf("clause count = %d, want only the range clause", len(should))
	}
	if clauseKind(should[0]) != "range" {
		t.Errorf("clause kind = %q, want range", clauseKind(should[0]))
	}
	if req.Size != 15 {
		t.Errorf("Size = %d, want 15", req.Size)
	}
}
