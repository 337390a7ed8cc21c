package sink

import (
	"context"
	"strings"

	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/errors"
)

// Format identifies an output serialization.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"

	// FormatChartPNG rasterizes just the trend chart in process; unlike the
	// full-deck png format it needs no external converter.
	FormatChartPNG Format = "chart-png"
)

// Formats lists every supported format in a stable order.
func Formats() []Format {
	return []Format{FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatChartPNG}
}

// ParseFormat normalizes and validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatChartPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want svg, json, png, pdf, or chart-png)", s)
}

// Ext returns the file extension for the format, dot included.
func (f Format) Ext() string {
	if f == FormatChartPNG {
		return ".chart.png"
	}
	return "." + string(f)
}

// ContentType returns the MIME type the HTTP layer serves the format with.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatPNG, FormatChartPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Render serializes the document in the given format. Scale only affects
// the raster formats.
func Render(ctx context.Context, doc *deck.Document, f Format, scale float64) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(doc), nil
	case FormatJSON:
		return RenderJSON(doc)
	case FormatPNG:
		return RenderPNG(ctx, doc, scale)
	case FormatPDF:
		return RenderPDF(ctx, doc)
	case FormatChartPNG:
		return RenderChartPNG(doc, scale)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
}
