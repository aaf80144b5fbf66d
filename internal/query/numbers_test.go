package query

import "testing"

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		wantNums []float64
	}{
		{"weight with unit", "молоко 2.5 кг", "молоко", []float64{2.5}},
		{"comma separator", "вода 1,5 л", "вода", []float64{1.5}},
		{"unit glued to number", "сок 200мл", "сок", []float64{200}},
		{"bare number", "1", "", []float64{1}},
		{"number leads", "5 кг картофель", "картофель", []float64{5}},
		{"two quantities", "2 шт по 0.5 л", "по", []float64{2, 0.5}},
		{"no numbers", "молоко домик", "молоко домик", nil},
		{"empty", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, nums := ExtractNumbers(tt.in)
			if got != tt.want {
				t.Errorf("ExtractNumbers(%q) residual = %q, want %q", tt.in, got, tt.want)
			}
			if len(nums) != len(tt.wantNums) {
				t.Fatalf("ExtractNumbers(%q) numbers = %v, want %v", tt.in, nums, tt.wantNums)
			}
			for i := range nums {
				if nums[i] != tt.wantNums[i] {
					t.Errorf("ExtractNumbers(%q) numbers[%d] = %v, want %v", tt.in, i, nums[i], tt.wantNums[i])
				}
			}
		})
	}
}
