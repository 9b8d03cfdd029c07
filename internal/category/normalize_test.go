package category

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"trims and lowercases", "  Food ", "food"},
		{"already canonical", "food", "food"},
		{"mixed case", "GrOcErIeS", "groceries"},
		{"inner whitespace preserved", " Eating Out ", "eating out"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"tabs and newlines", "\tRent\n", "rent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  Food ", "food", "GROCERIES", " Eating Out ", "", "  "}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
