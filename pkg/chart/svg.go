package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Palette for chart marks. Slide-level chrome colors live with the sinks;
// these only cover what the chart itself draws.
const (
	colorSeries  = "#2563eb"
	colorRolling = "#f59e0b"
	colorGrid    = "#e5e7eb"
	colorAxis    = "#6b7280"
	colorText    = "#374151"
	colorRef     = "#9ca3af"

	seriesStroke  = 2.0
	rollingStroke = 1.5
	markerRadius  = 3.5
	barGapFrac    = 0.2
)

// RenderSVG renders the fitted chart as a standalone SVG document.
func RenderSVG(cl *ChartLayout) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		cl.Region.X, cl.Region.Y, cl.Region.W, cl.Region.H, cl.Region.W, cl.Region.H)
	WriteSVG(&buf, cl)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG writes the chart as an SVG fragment into buf, in the coordinate
// space of cl.Region. Sinks call this to embed the chart in a slide.
func WriteSVG(buf *bytes.Buffer, cl *ChartLayout) {
	writeGrid(buf, cl)
	writeAxes(buf, cl)

	if cl.Single {
		writeReferenceLine(buf, cl)
		writeMarker(buf, cl.Points[0])
	} else if cl.Kind == KindBar {
		writeBars(buf, cl)
	} else {
		writePolyline(buf, cl.Points, colorSeries, seriesStroke)
	}

	if len(cl.Rolling) > 1 {
		writePolyline(buf, cl.Rolling, colorRolling, rollingStroke)
	}
	writeTitle(buf, cl)
	writeAnnotation(buf, cl)
}

func writeGrid(buf *bytes.Buffer, cl *ChartLayout) {
	for _, t := range cl.YTicks {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			cl.Plot.X, t.Pos, cl.Plot.Right(), t.Pos, colorGrid)
	}
}

func writeAxes(buf *bytes.Buffer, cl *ChartLayout) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		cl.Plot.X, cl.Plot.Bottom(), cl.Plot.Right(), cl.Plot.Bottom(), colorAxis)

	for _, t := range cl.YTicks {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			cl.Plot.X-labelGap, t.Pos, cl.LabelFontSize, colorText, escape(t.Label))
	}
	for _, t := range cl.XTicks {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="middle">%s</text>`+"\n",
			t.Pos, cl.Plot.Bottom()+cl.LabelFontSize+labelGap, cl.LabelFontSize, colorText, escape(t.Label))
	}
}

func writePolyline(buf *bytes.Buffer, points []PlotPoint, color string, width float64) {
	if len(points) < 2 {
		return
	}
	buf.WriteString(`  <polyline fill="none" points="`)
	for i, p := range points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(buf, `" stroke="%s" stroke-width="%.1f"/>`+"\n", color, width)
}

func writeBars(buf *bytes.Buffer, cl *ChartLayout) {
	slot := cl.Plot.W / float64(len(cl.Points))
	barW := slot * (1 - barGapFrac)
	for _, p := range cl.Points {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			p.X-barW/2, p.Y, barW, cl.Plot.Bottom()-p.Y, colorSeries)
	}
}

func writeReferenceLine(buf *bytes.Buffer, cl *ChartLayout) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="4 3"/>`+"\n",
		cl.Plot.X, cl.RefY, cl.Plot.Right(), cl.RefY, colorRef)
}

func writeMarker(buf *bytes.Buffer, p PlotPoint) {
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
		p.X, p.Y, markerRadius, colorSeries)
}

func writeTitle(buf *bytes.Buffer, cl *ChartLayout) {
	if cl.Title == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" font-weight="bold">%s</text>`+"\n",
		cl.Plot.X, cl.titleBaseline(), cl.TitleFontSize, colorText, escape(cl.Title))
}

func writeAnnotation(buf *bytes.Buffer, cl *ChartLayout) {
	if cl.Latest == "" || len(cl.Points) == 0 {
		return
	}
	last := cl.Points[len(cl.Points)-1]
	writeMarker(buf, last)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="end">%s</text>`+"\n",
		last.X, cl.annotationY(last), cl.LabelFontSize, colorText, escape(cl.Latest))
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
