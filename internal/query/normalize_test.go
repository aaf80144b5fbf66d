package query

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims edges", "  молоко  ", "молоко"},
		{"collapses runs", "молоко   3.2%", "молоко 3.2%"},
		{"tabs and newlines", "\tмолоко\nдомик", "молоко домик"},
		{"empty", "", ""},
		{"only whitespace", "   \t ", ""},
		{"case preserved", "Coca Cola", "Coca Cola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHasCyrillic(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"молоко", true},
		{"milk", false},
		{"milk молоко", true},
		{"Ёлка", true},
		{"123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasCyrillic(tt.in); got != tt.want {
			t.Errorf("HasCyrillic(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"split cyrillic word", "кар тофель", "картофель"},
		{"two stray spaces", "мо ло ко", "молоко"},
		{"latin untouched", "milk chocolate bar", "milk chocolate bar"},
		{"long cyrillic untouched", "молоко ультрапастеризованное деревенское", "молоко ультрапастеризованное деревенское"},
		{"too short result", "я б", "я б"},
		{"no spaces", "картофель", "картофель"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseSpaces(tt.in); got != tt.want {
				t.Errorf("CollapseSpaces(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
