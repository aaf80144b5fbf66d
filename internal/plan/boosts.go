package plan

// Heuristic gates and boost weights. These are empirically tuned policy, not
// derived values; change them only against the evaluation harness.
const (
	// CandidateMultiplier oversizes the raw candidate request so the noise
	// filter can discard hits without starving the final result count.
	CandidateMultiplier = 3

	// shortQueryMaxLen is the length (in runes) at or below which a query is
	// considered short: fuzziness is disabled and aggressive prefix/wildcard
	// clauses are added instead.
	shortQueryMaxLen = 2

	// keywordPrefixMinLen gates exact-prefix clauses on untokenized fields.
	keywordPrefixMinLen = 2

	// collapsedMinLen gates the clause set for the space-collapsed alternate.
	collapsedMinLen = 2

	// perWordMinLen is the shortest word that earns its own clause set in a
	// multi-word query.
	perWordMinLen = 2

	// DefaultPerWordCap bounds how many words of a multi-word query receive
	// per-word clauses. Each word adds seven clauses, so an uncapped long
	// query inflates engine latency for marginal recall.
	DefaultPerWordCap = 8

	// weightTolerance is the relative band for numeric range clauses (±20%).
	weightTolerance = 0.2

	categoryAggBuckets = 10
)

const (
	boostKeywordNamePrefix   = 2.5
	boostKeywordBrandPrefix  = 2.0
	boostKeywordsPrefix      = 1.8
	boostCollapsedPhrase     = 1.5
	boostShortPhrasePrefix   = 2.0
	boostShortNameWildcard   = 3.0
	boostShortBrandWildcard  = 2.5
	boostShortNamePrefix     = 2.0
	boostShortBrandPrefix    = 1.8
	boostAllWordsMatch       = 1.5
	boostAnyWordMatch        = 1.0
	boostPerWordMatch        = 0.8
	boostPerWordNamePrefix   = 1.2
	boostPerWordBrandPrefix  = 1.5
	boostPerWordBrandKeyword = 2.0
	boostPerWordKeywords     = 1.0
	boostPerWordNameWildcard = 1.5
	boostPerWordBrandWild    = 2.0
	boostWeightRange         = 1.5
)

// Field lists carry per-field boosts in Elasticsearch "field^boost" form.
// Name ranks highest, then brand, then category/keywords, description lowest.
var (
	primaryFields = []string{
		"name^3",
		"brand^2",
		"category^1.5",
		"keywords^2",
		"description^1",
		"search_text^1.5",
		"brand.english^2.5",
	}

	boolPrefixFields = []string{
		"name^2.5",
		"brand^2",
		"keywords^1.5",
	}

	layoutFields = []string{
		"name.layout^2",
		"search_text.layout^1",
		"brand.layout^1.5",
	}

	collapsedFields = []string{
		"name^2.5",
		"brand^2",
		"keywords^1.5",
		"search_text^1.5",
	}
)
