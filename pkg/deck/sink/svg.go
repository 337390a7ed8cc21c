package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/insightdeck/insightdeck/pkg/chart"
	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/layout"
)

// Deck theme. Chart mark colors live in the chart package; everything the
// slides themselves draw is colored here.
const (
	colorBackground  = "#ffffff"
	colorSlideBorder = "#e2e8f0"
	colorAccent      = "#2563eb"
	colorTitle       = "#0f172a"
	colorSubtitle    = "#64748b"
	colorTileFill    = "#f8fafc"
	colorTileBorder  = "#cbd5e1"
	colorTileLabel   = "#64748b"
	colorTileValue   = "#0f172a"
	colorBody        = "#334155"
	colorFooter      = "#94a3b8"

	tileCornerRadius = 6
	slideGap         = 16
	fontFamily       = "Helvetica, Arial, sans-serif"
)

// RenderSVG renders every slide of the document, stacked vertically, as one
// SVG document. Output is deterministic for identical documents.
func RenderSVG(doc *deck.Document) []byte {
	var width, height float64
	for _, s := range doc.Slides {
		if s.Width > width {
			width = s.Width
		}
		height += s.Height + slideGap
	}
	if len(doc.Slides) > 0 {
		height -= slideGap
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		width, height, width, height, fontFamily)

	offset := 0.0
	for _, slide := range doc.Slides {
		fmt.Fprintf(&buf, `<g transform="translate(0 %.1f)">`+"\n", offset)
		renderSlide(&buf, slide)
		buf.WriteString("</g>\n")
		offset += slide.Height + slideGap
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSlide(buf *bytes.Buffer, slide deck.Slide) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		slide.Width, slide.Height, colorBackground, colorSlideBorder)

	for _, el := range slide.Elements {
		switch el.Kind {
		case deck.ElementTitle:
			renderText(buf, el, colorTitle, `font-weight="bold"`)
		case deck.ElementSubtitle:
			renderText(buf, el, colorSubtitle, "")
		case deck.ElementAccentBar:
			fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
				el.Rect.X, el.Rect.Y, el.Rect.W, el.Rect.H, colorAccent)
		case deck.ElementTile:
			renderTile(buf, el)
		case deck.ElementChart:
			chart.WriteSVG(buf, el.Chart)
		case deck.ElementSection:
			renderSection(buf, el)
		case deck.ElementFooter:
			renderText(buf, el, colorFooter, "")
		}
	}
}

// renderText draws a single text line anchored at the top-left of its rect.
func renderText(buf *bytes.Buffer, el deck.Element, color, extra string) {
	if extra != "" {
		extra = " " + extra
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s"%s>%s</text>`+"\n",
		el.Rect.X, el.Rect.Y+el.FontSize, el.FontSize, color, extra, escape(el.Text))
}

func renderTile(buf *bytes.Buffer, el deck.Element) {
	t := el.Tile
	r := el.Rect
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%d" fill="%s" stroke="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, tileCornerRadius, colorTileFill, colorTileBorder)

	x := r.X + t.PadX
	y := r.Y + t.PadY + t.LabelFontSize
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
		x, y, t.LabelFontSize, colorTileLabel, escape(t.Label))

	y += layout.LineHeight(t.ValueFontSize)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" font-weight="bold">%s</text>`+"\n",
		x, y, t.ValueFontSize, colorTileValue, escape(t.KPI.Value))

	if t.ShowHint {
		y += layout.LineHeight(t.LabelFontSize)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			x, y, t.LabelFontSize, colorTileLabel, escape(t.KPI.Hint))
	}
}

func renderSection(buf *bytes.Buffer, el deck.Element) {
	s := el.Section
	inner := el.Rect.Inset(s.Pad)

	y := inner.Y + s.HeadingFontSize
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" font-weight="bold">%s</text>`+"\n",
		inner.X, y, s.HeadingFontSize, colorTitle, escape(s.Heading))

	y = inner.Y + layout.LineHeight(s.HeadingFontSize)
	for _, line := range s.Lines {
		y += layout.LineHeight(s.FontSize)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			inner.X, y, s.FontSize, colorBody, escape(line))
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
