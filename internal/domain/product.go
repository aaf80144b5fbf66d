// Package domain holds the core catalog types shared by every layer.
package domain

import "strings"

// Product is a catalog document as stored in the search index.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Weight      string  `json:"weight"`
	WeightUnit  string  `json:"weight_unit"`
	WeightValue float64 `json:"weight_value"`
	PackageSize string  `json:"package_size"`
	Keywords    string  `json:"keywords"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	SearchText  string  `json:"search_text"`
}

// DeriveSearchText builds the lower-cased concatenation of the searchable
// fields. The indexed search_text must always equal this derivation.
func (p Product) DeriveSearchText() string {
	parts := []string{p.Name, p.Category, p.Brand, p.Keywords, p.Description}
	return strings.ToLower(strings.Join(parts, " "))
}

// Hit is a scored document returned by the engine. The score is opaque and
// only meaningful relative to other hits in the same response.
type Hit struct {
	Product Product
	Score   float64
}
