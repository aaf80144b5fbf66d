package catalog

import (
	"strings"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <product id="p1">
    <name> Молоко Домик в деревне 3.2% </name>
    <category>Молочные продукты</category>
    <brand>Домик в деревне</brand>
    <weight unit="мл">930</weight>
    <keywords>молоко питьевое</keywords>
    <description>Ультрапастеризованное молоко</description>
    <price>89.90</price>
    <image_url>https://example.com/p1.jpg</image_url>
  </product>
  <product id="p2">
    <name>Хлеб бородинский</name>
    <category>Хлеб</category>
    <price>not-a-number</price>
  </product>
</catalog>`

func TestParseFeed(t *testing.T) {
	products, err := ParseFeed(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}

	p := products[0]
	if p.ID != "p1" {
		t.Errorf("ID = %q, want p1", p.ID)
	}
	if p.Name != "Молоко Домик в деревне 3.2%" {
		t.Errorf("Name not trimmed: %q", p.Name)
	}
	if p.Weight != "930" || p.WeightUnit != "мл" {
		t.Errorf("weight = (%q, %q), want (930, мл)", p.Weight, p.WeightUnit)
	}
	if p.WeightValue != 930 {
		t.Errorf("WeightValue = %v, want 930", p.WeightValue)
	}
	if p.Price != 89.90 {
		t.Errorf("Price = %v, want 89.90", p.Price)
	}
	if p.PackageSize != "1" {
		t.Errorf("PackageSize default = %q, want 1", p.PackageSize)
	}
}

func TestParseFeedDefaults(t *testing.T) {
	products, err := ParseFeed(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatal(err)
	}

	p := products[1]
	if p.Weight != "0" {
		t.Errorf("missing weight defaults to %q, want 0", p.Weight)
	}
	if p.WeightValue != 0 {
		t.Errorf("WeightValue = %v, want 0", p.WeightValue)
	}
	if p.Price != 0 {
		t.Errorf("unparseable price = %v, want 0", p.Price)
	}
}

func TestParseFeedDerivesSearchText(t *testing.T) {
	products, err := ParseFeed(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatal(err)
	}

	st := products[0].SearchText
	for _, want := range []string{"молоко домик в деревне 3.2%", "молочные продукты", "питьевое", "ультрапастеризованное"} {
		if !strings.Contains(st, want) {
			t.Errorf("search_text %q missing %q", st, want)
		}
	}
	if st != strings.ToLower(st) {
		t.Errorf("search_text is not lower-cased: %q", st)
	}
}

func TestParseFeedInvalidXML(t *testing.T) {
	if _, err := ParseFeed(strings.NewReader("<catalog><product>")); err == nil {
		t.Fatal("expected error for truncated XML")
	}
}
