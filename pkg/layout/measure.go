package layout

import "unicode/utf8"

// Glyph model ratios, expressed as fractions of the font size.
// Tuned for the default sans-serif deck font; wide enough to be safe for
// digit-heavy KPI values.
const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.35
)

// TextWidth estimates the rendered width of s at the given font size.
func TextWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * charWidthRatio
}

// LineHeight returns the vertical space one text line occupies at the given
// font size, including leading.
func LineHeight(fontSize float64) float64 {
	return fontSize * lineHeightRatio
}

// MaxChars returns how many characters of the model font fit in the given
// width at the given font size, never less than a minimum that keeps a
// truncated label recognizable.
func MaxChars(width, fontSize float64) int {
	n := int(width / (fontSize * charWidthRatio))
	if n < 3 {
		n = 3
	}
	return n
}

// TruncateWithMarker shortens s so that it fits in maxChars runes including
// the marker, which is always appended when truncation occurs.
func TruncateWithMarker(s, marker string, maxChars int) string {
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	markerLen := utf8.RuneCountInString(marker)
	keep := maxChars - markerLen
	if keep < 1 {
		keep = 1
	}
	runes := []rune(s)
	if keep > len(runes) {
		keep = len(runes)
	}
	return string(runes[:keep]) + marker
}
