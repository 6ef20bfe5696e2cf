package doctags

import (
	"testing"
)

func TestDeduplicateLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "duplicates removed keeping first occurrence",
			input: "alpha\nbeta\nalpha\ngamma\nbeta",
			want:  "alpha\nbeta\ngamma",
		},
		{
			name:  "whitespace variants compare equal",
			input: "alpha\n  alpha  \nbeta",
			want:  "alpha\nbeta",
		},
		{
			name:  "blank lines dropped",
			input: "alpha\n\n\nbeta",
			want:  "alpha\nbeta",
		},
		{
			name:  "no duplicates unchanged",
			input: "one\ntwo\nthree",
			want:  "one\ntwo\nthree",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeduplicateLines(tt.input); got != tt.want {
				t.Errorf("DeduplicateLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeduplicateLinesIdempotent(t *testing.T) {
	input := "alpha\nbeta\nalpha\n\ngamma\nbeta"
	once := DeduplicateLines(input)
	twice := DeduplicateLines(once)
	if once != twice {
		t.Errorf("second pass changed output: %q vs %q", once, twice)
	}
}
