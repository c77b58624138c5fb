package chunking

import (
	"reflect"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []int
	}{
		{
			name:  "no markers",
			lines: []string{"Once upon a time", "", "there was a fox."},
			want:  nil,
		},
		{
			name:  "markdown heading chapter",
			lines: []string{"## Chapter 1: The Start", "text", "# Kapitel 2", "more"},
			want:  []int{0, 2},
		},
		{
			name:  "bare chapter case insensitive",
			lines: []string{"CHAPTER 3", "body", "kapitel 4"},
			want:  []int{0, 2},
		},
		{
			name:  "roman numerals alone on a line",
			lines: []string{"I.", "body", "  IV  ", "body", "xii."},
			want:  []int{0, 2, 4},
		},
		{
			name:  "roman numeral inside prose is not a marker",
			lines: []string{"I. went home", "I am here"},
			want:  nil,
		},
		{
			name:  "malformed numerals are not markers",
			lines: []string{"dim", "mild", "civic", "IIII", "VX", "."},
			want:  nil,
		},
		{
			name:  "well-formed numerals match even when they spell a word",
			lines: []string{"x", "body", "MIX", "body", "XLII"},
			want:  []int{0, 2, 4},
		},
		{
			name:  "part and teil",
			lines: []string{"Part 1", "filler", "Teil 2", "more filler"},
			want:  []int{0, 2},
		},
		{
			name:  "chapter without number",
			lines: []string{"Chapter One", "The chapter 5 of the saga"},
			want:  nil,
		},
		{
			name:  "blank lines never match",
			lines: []string{"", "   ", "\t"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
