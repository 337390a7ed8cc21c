package chart

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/fonts"
)

// RenderPNG rasterizes the fitted chart at the given scale factor using the
// discovered system font. The image covers exactly cl.Region.
func RenderPNG(cl *ChartLayout, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster scale must be positive, got %v", scale)
	}

	w := int(cl.Region.W*scale + 0.5)
	h := int(cl.Region.H*scale + 0.5)
	ctx := gg.NewContext(w, h)
	ctx.SetHexColor("#ffffff")
	ctx.Clear()

	// Region-local pixel coordinates.
	px := func(x float64) float64 { return (x - cl.Region.X) * scale }
	py := func(y float64) float64 { return (y - cl.Region.Y) * scale }

	if err := drawMarks(ctx, cl, px, py, scale); err != nil {
		return nil, err
	}
	return ctx.Image(), nil
}

func drawMarks(ctx *gg.Context, cl *ChartLayout, px, py func(float64) float64, scale float64) error {
	ctx.SetLineWidth(scale)
	ctx.SetHexColor(colorGrid)
	for _, t := range cl.YTicks {
		ctx.DrawLine(px(cl.Plot.X), py(t.Pos), px(cl.Plot.Right()), py(t.Pos))
		ctx.Stroke()
	}

	ctx.SetHexColor(colorAxis)
	ctx.DrawLine(px(cl.Plot.X), py(cl.Plot.Bottom()), px(cl.Plot.Right()), py(cl.Plot.Bottom()))
	ctx.Stroke()

	labelFace, err := fonts.Face(cl.LabelFontSize * scale)
	if err != nil {
		return err
	}
	ctx.SetFontFace(labelFace)
	ctx.SetHexColor(colorText)
	for _, t := range cl.YTicks {
		ctx.DrawStringAnchored(t.Label, px(cl.Plot.X)-labelGap*scale, py(t.Pos), 1, 0.35)
	}
	for _, t := range cl.XTicks {
		ctx.DrawStringAnchored(t.Label, px(t.Pos), py(cl.Plot.Bottom())+(cl.LabelFontSize+labelGap)*scale, 0.5, 0.35)
	}

	switch {
	case cl.Single:
		ctx.SetHexColor(colorRef)
		ctx.SetDash(4*scale, 3*scale)
		ctx.DrawLine(px(cl.Plot.X), py(cl.RefY), px(cl.Plot.Right()), py(cl.RefY))
		ctx.Stroke()
		ctx.SetDash()
		ctx.SetHexColor(colorSeries)
		p := cl.Points[0]
		ctx.DrawCircle(px(p.X), py(p.Y), markerRadius*scale)
		ctx.Fill()
	case cl.Kind == KindBar:
		slot := cl.Plot.W / float64(len(cl.Points)) * scale
		barW := slot * (1 - barGapFrac)
		ctx.SetHexColor(colorSeries)
		for _, p := range cl.Points {
			ctx.DrawRectangle(px(p.X)-barW/2, py(p.Y), barW, py(cl.Plot.Bottom())-py(p.Y))
			ctx.Fill()
		}
	default:
		strokePath(ctx, cl.Points, px, py, colorSeries, seriesStroke*scale)
	}

	if len(cl.Rolling) > 1 {
		strokePath(ctx, cl.Rolling, px, py, colorRolling, rollingStroke*scale)
	}

	if cl.Title != "" {
		titleFace, err := fonts.Face(cl.TitleFontSize * scale)
		if err != nil {
			return err
		}
		ctx.SetFontFace(titleFace)
		ctx.SetHexColor(colorText)
		ctx.DrawString(cl.Title, px(cl.Plot.X), py(cl.titleBaseline()))
	}

	if cl.Latest != "" && len(cl.Points) > 0 {
		last := cl.Points[len(cl.Points)-1]
		ctx.SetFontFace(labelFace)
		ctx.SetHexColor(colorSeries)
		ctx.DrawCircle(px(last.X), py(last.Y), markerRadius*scale)
		ctx.Fill()
		ctx.SetHexColor(colorText)
		ctx.DrawStringAnchored(cl.Latest, px(last.X), py(cl.annotationY(last)), 1, 0)
	}
	return nil
}

func strokePath(ctx *gg.Context, points []PlotPoint, px, py func(float64) float64, color string, width float64) {
	if len(points) < 2 {
		return
	}
	ctx.SetHexColor(color)
	ctx.SetLineWidth(width)
	ctx.MoveTo(px(points[0].X), py(points[0].Y))
	for _, p := range points[1:] {
		ctx.LineTo(px(p.X), py(p.Y))
	}
	ctx.Stroke()
}

// EncodePNG serializes an image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding chart png")
	}
	return buf.Bytes(), nil
}

// FitInBox scales an image down to fit a box while preserving its aspect
// ratio. Images already inside the box are returned untouched.
func FitInBox(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}
