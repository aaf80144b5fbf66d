package es

// Index analysis and mapping definitions for the catalog index. The prefix
// analyzer feeds edge n-grams through the Russian stop/stemmer chain so that
// 1-15 rune prefixes match at index time; the layout analyzer runs the
// keyboard char_filter so wrong-layout queries match without client-side
// correction.

// layoutMappings is the bidirectional QWERTY<->ЙЦУКЕН char_filter table.
var layoutMappings = []string{
	"й => q", "ц => w", "у => e", "к => r", "е => t", "н => y", "г => u", "ш => i", "щ => o", "з => p",
	"х => [", "ъ => ]", "ф => a", "ы => s", "в => d", "а => f", "п => g", "р => h", "о => j", "л => k",
	"д => l", "ж => ;", "э => '", "я => z", "ч => x", "с => c", "м => v", "и => b", "т => n", "ь => m",
	"б => ,", "ю => .",
	"q => й", "w => ц", "e => у", "r => к", "t => е", "y => н", "u => г", "i => ш", "o => щ", "p => з",
	"[ => х", "] => ъ", "a => ф", "s => ы", "d => в", "f => а", "g => п", "h => р", "j => о", "k => л",
	"l => д", "; => ж", "' => э", "z => я", "x => ч", "c => с", "v => м", "b => и", "n => т", "m => ь",
	", => б", ". => ю",
}

// IndexSettings returns the analysis settings for the catalog index.
func IndexSettings() map[string]any {
	return map[string]any{
		"analysis": map[string]any{
			"char_filter": map[string]any{
				"layout_filter": map[string]any{
					"type":     "mapping",
					"mappings": layoutMappings,
				},
			},
			"analyzer": map[string]any{
				"prefix_analyzer": map[string]any{
					"type":      "custom",
					"tokenizer": "standard",
					"filter":    []string{"lowercase", "russian_stop", "russian_stemmer", "edge_ngram_filter"},
				},
				"search_analyzer": map[string]any{
					"type":      "custom",
					"tokenizer": "standard",
					"filter":    []string{"lowercase", "russian_stop", "russian_stemmer"},
				},
				"english_analyzer": map[string]any{
					"type":      "custom",
					"tokenizer": "standard",
					"filter":    []string{"lowercase", "edge_ngram_filter"},
				},
				"layout_analyzer": map[string]any{
					"type":        "custom",
					"tokenizer":   "keyword",
					"char_filter": []string{"layout_filter"},
					"filter":      []string{"lowercase"},
				},
			},
			"filter": map[string]any{
				"edge_ngram_filter": map[string]any{
					"type":     "edge_ngram",
					"min_gram": 1,
					"max_gram": 15,
				},
				"russian_stop": map[string]any{
					"type":      "stop",
					"stopwords": "_russian_",
				},
				"russian_stemmer": map[string]any{
					"type":     "stemmer",
					"language": "russian",
				},
			},
		},
	}
}

// IndexMappings returns the field mappings for the catalog index.
func IndexMappings() map[string]any {
	prefixText := func(extraFields map[string]any) map[string]any {
		m := map[string]any{
			"type":            "text",
			"analyzer":        "prefix_analyzer",
			"search_analyzer": "search_analyzer",
		}
		if len(extraFields) > 0 {
			m["fields"] = extraFields
		}
		return m
	}

	keywordSub := map[string]any{"type": "keyword"}
	layoutSub := map[string]any{"type": "text", "analyzer": "layout_analyzer"}
	englishSub := map[string]any{"type": "text", "analyzer": "english_analyzer"}

	return map[string]any{
		"properties": map[string]any{
			"id": map[string]any{"type": "keyword"},
			"name": prefixText(map[string]any{
				"keyword": keywordSub,
				"layout":  layoutSub,
			}),
			"category": prefixText(map[string]any{
				"keyword": keywordSub,
			}),
			"brand": prefixText(map[string]any{
				"keyword": keywordSub,
				"english": englishSub,
				"layout":  layoutSub,
			}),
			"keywords":    prefixText(nil),
			"description": prefixText(nil),
			"search_text": prefixText(map[string]any{
				"layout": layoutSub,
			}),
			"weight":       map[string]any{"type": "keyword"},
			"weight_unit":  map[string]any{"type": "keyword"},
			"weight_value": map[string]any{"type": "float"},
			"package_size": map[string]any{"type": "keyword"},
			"price":        map[string]any{"type": "float"},
			"image_url":    map[string]any{"type": "keyword"},
		},
	}
}
