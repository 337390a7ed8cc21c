package sink

import (
	"context"

	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/render"
)

// DefaultPNGScale doubles the pixel dimensions for crisp output on
// high-density displays.
const DefaultPNGScale = 2.0

// RenderPNG renders the deck as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, doc *deck.Document, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	return render.ToPNG(ctx, RenderSVG(doc), scale)
}
