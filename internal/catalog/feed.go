// Package catalog parses the product feed consumed by the index loader.
package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kupisearch/kupisearch/internal/domain"
)

type xmlWeight struct {
	Value string `xml:",chardata"`
	Unit  string `xml:"unit,attr"`
}

type xmlProduct struct {
	ID          string    `xml:"id,attr"`
	Name        string    `xml:"name"`
	Category    string    `xml:"category"`
	Brand       string    `xml:"brand"`
	Weight      xmlWeight `xml:"weight"`
	PackageSize string    `xml:"package_size"`
	Keywords    string    `xml:"keywords"`
	Description string    `xml:"description"`
	Price       string    `xml:"price"`
	ImageURL    string    `xml:"image_url"`
}

type xmlFeed struct {
	XMLName  xml.Name     `xml:"catalog"`
	Products []xmlProduct `xml:"product"`
}

// ParseFeed reads an XML product feed and returns index-ready documents.
// Numeric fields that fail to parse default to zero; search_text is derived
// from the searchable fields so the index invariant holds from the start.
func ParseFeed(r io.Reader) ([]domain.Product, error) {
	var feed xmlFeed
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	products := make([]domain.Product, 0, len(feed.Products))
	for _, xp := range feed.Products {
		p := domain.Product{
			ID:          xp.ID,
			Name:        strings.TrimSpace(xp.Name),
			Category:    strings.TrimSpace(xp.Category),
			Brand:       strings.TrimSpace(xp.Brand),
			Weight:      strings.TrimSpace(xp.Weight.Value),
			WeightUnit:  xp.Weight.Unit,
			PackageSize: strings.TrimSpace(xp.PackageSize),
			Keywords:    strings.TrimSpace(xp.Keywords),
			Description: strings.TrimSpace(xp.Description),
			ImageURL:    strings.TrimSpace(xp.ImageURL),
		}
		if p.Weight == "" {
			p.Weight = "0"
		}
		if p.PackageSize == "" {
			p.PackageSize = "1"
		}
		if v, err := strconv.ParseFloat(p.Weight, 64); err == nil {
			p.WeightValue = v
		}
		if priceStr := strings.TrimSpace(xp.Price); priceStr != "" {
			if v, err := strconv.ParseFloat(priceStr, 64); err == nil {
				p.Price = v
			}
		}
		p.SearchText = p.DeriveSearchText()
		products = append(products, p)
	}

	return products, nil
}
