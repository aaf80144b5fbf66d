package plan

// Clause is one atomic matching condition inside the disjunctive request.
// Each clause marshals to a single-key Elasticsearch query DSL object.
type Clause map[string]any

func multiMatch(query string, fields []string, matchType string) Clause {
	return Clause{
		"multi_match": map[string]any{
			"query":  query,
			"fields": fields,
			"type":   matchType,
		},
	}
}

func multiMatchFuzzy(query string, fields []string, fuzziness string, prefixLength int) Clause {
	return Clause{
		"multi_match": map[string]any{
			"query":         query,
			"fields":        fields,
			"type":          "best_fields",
			"fuzziness":     fuzziness,
			"prefix_length": prefixLength,
		},
	}
}

func multiMatchFuzzyNoPrefix(query string, fields []string, fuzziness string) Clause {
	return Clause{
		"multi_match": map[string]any{
			"query":     query,
			"fields":    fields,
			"type":      "best_fields",
			"fuzziness": fuzziness,
		},
	}
}

func prefix(field, value string, boost float64) Clause {
	return Clause{
		"prefix": map[string]any{
			field: map[string]any{
				"value": value,
				"boost": boost,
			},
		},
	}
}

func wildcard(field, value string, boost float64) Clause {
	return Clause{
		"wildcard": map[string]any{
			field: map[string]any{
				"value": value,
				"boost": boost,
			},
		},
	}
}

func matchPhrasePrefix(field, query string, boost float64) Clause {
	return Clause{
		"match_phrase_prefix": map[string]any{
			field: map[string]any{
				"query": query,
				"boost": boost,
			},
		},
	}
}

func match(field, query string, boost float64) Clause {
	return Clause{
		"match": map[string]any{
			field: map[string]any{
				"query": query,
				"boost": boost,
			},
		},
	}
}

func matchOperator(field, query, operator string, boost float64) Clause {
	return Clause{
		"match": map[string]any{
			field: map[string]any{
				"query":    query,
				"operator": operator,
				"boost":    boost,
			},
		},
	}
}

func numericRange(field string, gte, lte, boost float64) Clause {
	return Clause{
		"range": map[string]any{
			field: map[string]any{
				"gte":   gte,
				"lte":   lte,
				"boost": boost,
			},
		},
	}
}
