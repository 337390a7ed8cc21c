package sink

import (
	"github.com/insightdeck/insightdeck/pkg/chart"
	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/errors"
)

// maxChartPNGEdge caps the raster size so an oversized scale factor cannot
// allocate an absurd image.
const maxChartPNGEdge = 4096

// RenderChartPNG rasterizes the document's trend chart in process using the
// discovered system font. This is the converter-free raster path: the
// full-deck png format shells out to rsvg-convert, this one does not.
func RenderChartPNG(doc *deck.Document, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	cl := findChart(doc)
	if cl == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document has no chart element")
	}

	img, err := chart.RenderPNG(cl, scale)
	if err != nil {
		return nil, err
	}
	return chart.EncodePNG(chart.FitInBox(img, maxChartPNGEdge, maxChartPNGEdge))
}

// findChart returns the first chart element in the document.
func findChart(doc *deck.Document) *chart.ChartLayout {
	for _, slide := range doc.Slides {
		for _, el := range slide.Elements {
			if el.Chart != nil {
				return el.Chart
			}
		}
	}
	return nil
}
