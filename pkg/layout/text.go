package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/report"
)

// bulletPrefix is prepended to the first wrapped line of every bullet.
const bulletPrefix = "• "

// headingGap separates a section heading from its first bullet line.
const headingGap = 4.0

// SectionLayout records how one narrative section was fitted: its final
// sub-rectangle, the chosen font size, and the wrapped (possibly truncated)
// lines. When Truncated is set, the last line ends with the marker.
type SectionLayout struct {
	Heading         string        `json:"heading"`
	Rect            canvas.Region `json:"rect"`
	Pad             float64       `json:"pad"`
	HeadingFontSize float64       `json:"heading_font_size"`
	FontSize        float64       `json:"font_size"`
	Lines           []string      `json:"lines"`
	Truncated       bool          `json:"truncated,omitempty"`
}

// TextBlocks lays the ordered sections into the region. Sections are split
// across columns in order (first half left, second half right for the
// default two columns); within a column each section gets a sub-rectangle
// proportional to its weight.
//
// Within a sub-rectangle, bullets are greedily word-wrapped at the largest
// ladder font whose line count fits; if even the smallest font overflows,
// trailing lines are cut and the last visible line ends with the marker.
// The total rendered line height never exceeds the sub-rectangle height.
func TextBlocks(sections []report.TextSection, region canvas.Region, opts TextOptions) ([]SectionLayout, error) {
	if opts.Columns < 1 || len(opts.FontSizes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "text layout options need at least one column and one font size")
	}
	if len(sections) == 0 {
		return nil, nil
	}

	columns := splitColumns(sections, opts.Columns)
	colW := (region.W - float64(len(columns)-1)*opts.GapX) / float64(len(columns))

	var out []SectionLayout
	for ci, col := range columns {
		x := region.X + float64(ci)*(colW+opts.GapX)
		rects := partitionColumn(col, x, region.Y, colW, region.H, opts.GapY)
		for si, sec := range col {
			out = append(out, fitSection(sec, rects[si], opts))
		}
	}
	return out, nil
}

// splitColumns distributes sections across up to n columns in order,
// filling earlier columns first. Empty columns are dropped.
func splitColumns(sections []report.TextSection, n int) [][]report.TextSection {
	perCol := (len(sections) + n - 1) / n
	var cols [][]report.TextSection
	for start := 0; start < len(sections); start += perCol {
		end := start + perCol
		if end > len(sections) {
			end = len(sections)
		}
		cols = append(cols, sections[start:end])
	}
	return cols
}

// partitionColumn allocates each section a sub-rectangle whose height is
// proportional to its weight (unset weights count as 1).
func partitionColumn(sections []report.TextSection, x, y, w, h, gap float64) []canvas.Region {
	weight := func(s report.TextSection) float64 {
		if s.Weight > 0 {
			return s.Weight
		}
		return 1
	}

	var total float64
	for _, s := range sections {
		total += weight(s)
	}

	avail := h - float64(len(sections)-1)*gap
	rects := make([]canvas.Region, len(sections))
	cursor := y
	for i, s := range sections {
		secH := avail * weight(s) / total
		rects[i] = canvas.Region{Name: s.Heading, X: x, Y: cursor, W: w, H: secH}
		cursor += secH + gap
	}
	return rects
}

// fitSection wraps and fits one section's bullets into its sub-rectangle.
// The relaxation order is fixed: walk the font ladder down re-wrapping at
// each step, and only at the bottom of the ladder start cutting lines.
func fitSection(sec report.TextSection, rect canvas.Region, opts TextOptions) SectionLayout {
	inner := rect.Inset(opts.Pad)
	bodyH := inner.H - LineHeight(opts.HeadingSize) - headingGap
	if bodyH < 0 {
		bodyH = 0
	}

	result := SectionLayout{
		Heading:         sec.Heading,
		Rect:            rect,
		Pad:             opts.Pad,
		HeadingFontSize: opts.HeadingSize,
		FontSize:        opts.FontSizes[len(opts.FontSizes)-1],
	}

	var lines []string
	for _, size := range opts.FontSizes {
		lines = wrapBullets(sec.Bullets, inner.W, size)
		if float64(len(lines))*LineHeight(size) <= bodyH {
			result.FontSize = size
			result.Lines = lines
			return result
		}
	}

	// Minimum font still overflows: cut to capacity and mark the cut.
	minSize := result.FontSize
	capacity := 0
	if lh := LineHeight(minSize); lh > 0 {
		capacity = int(bodyH / lh)
	}
	if capacity <= 0 {
		result.Truncated = len(lines) > 0
		return result
	}

	visible := append([]string(nil), lines[:capacity]...)
	visible[capacity-1] = appendMarker(visible[capacity-1], opts.Marker, inner.W, minSize)
	result.Lines = visible
	result.Truncated = true
	return result
}

// wrapBullets greedily word-wraps every bullet at the given width,
// breaking on whitespace and never splitting a word.
func wrapBullets(bullets []string, width, fontSize float64) []string {
	var out []string
	for _, b := range bullets {
		out = append(out, wrapLine(bulletPrefix+b, width, fontSize)...)
	}
	return out
}

func wrapLine(s string, width, fontSize float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if TextWidth(candidate, fontSize) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// appendMarker ends line with the marker, shortening the line if the marker
// would not fit the width otherwise.
func appendMarker(line, marker string, width, fontSize float64) string {
	maxChars := MaxChars(width, fontSize)
	if utf8.RuneCountInString(line)+utf8.RuneCountInString(marker) <= maxChars {
		return line + marker
	}
	return TruncateWithMarker(line, marker, maxChars)
}
