package layout

import "testing"

func TestTextWidth(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fontSize float64
		want     float64
	}{
		{name: "empty", text: "", fontSize: 12, want: 0},
		{name: "ascii", text: "abcd", fontSize: 10, want: 22},
		{name: "multibyte counts runes", text: "£120", fontSize: 10, want: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextWidth(tt.text, tt.fontSize); got != tt.want {
				t.Errorf("TextWidth(%q, %v) = %v, want %v", tt.text, tt.fontSize, got, tt.want)
			}
		})
	}
}

func TestMaxChars(t *testing.T) {
	if got := MaxChars(110, 10); got != 20 {
		t.Errorf("MaxChars(110, 10) = %d, want 20", got)
	}
	// Never below the readable floor, even for absurdly narrow boxes.
	if got := MaxChars(1, 24); got != 3 {
		t.Errorf("MaxChars(1, 24) = %d, want 3", got)
	}
}

func TestTruncateWithMarker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		want     string
	}{
		{name: "fits untouched", input: "short", maxChars: 10, want: "short"},
		{name: "exact fit untouched", input: "short", maxChars: 5, want: "short"},
		{name: "truncated ends with marker", input: "a very long label", maxChars: 8, want: "a very …"},
		{name: "keeps at least one rune", input: "abc", maxChars: 1, want: "a…"},
		{name: "multibyte safe", input: "£££££", maxChars: 4, want: "£££…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWithMarker(tt.input, DefaultMarker, tt.maxChars); got != tt.want {
				t.Errorf("TruncateWithMarker(%q, %d) = %q, want %q", tt.input, tt.maxChars, got, tt.want)
			}
		})
	}
}
