package query

import "testing"

func TestFixLayout(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      string
		corrected bool
	}{
		{"short wrong layout", "ghb", "при", true},
		{"two letters", "vj", "мо", true},
		{"single letter", "v", "м", true},
		{"too long", "gfhjkm", "gfhjkm", false},
		{"common word pr", "pr", "pr", false},
		{"common word go", "go", "go", false},
		{"common word to", "to", "to", false},
		{"cyrillic untouched", "мол", "мол", false},
		{"mixed script untouched", "мj", "мj", false},
		{"digits only", "12", "12", false},
		{"empty", "", "", false},
		{"upper case", "GHB", "ПРИ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, corrected := FixLayout(tt.in)
			if got != tt.want || corrected != tt.corrected {
				t.Errorf("FixLayout(%q) = (%q, %v), want (%q, %v)",
					tt.in, got, corrected, tt.want, tt.corrected)
			}
		})
	}
}

func TestFixLayoutResultIsCyrillic(t *testing.T) {
	got, corrected := FixLayout("ghb")
	if !corrected {
		t.Fatal("expected correction for \"ghb\"")
	}
	if !HasCyrillic(got) {
		t.Errorf("corrected form %q contains no Cyrillic", got)
	}
}
