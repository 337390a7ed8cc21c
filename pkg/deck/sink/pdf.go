package sink

import (
	"context"

	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/render"
)

// RenderPDF renders the deck as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, doc *deck.Document) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(doc))
}
