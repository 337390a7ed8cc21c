package chart

import (
	"bytes"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/layout"
	"github.com/insightdeck/insightdeck/pkg/report"
)

func seriesOf(n int, value func(i int) float64) report.Series {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := make(report.Series, n)
	for i := range s {
		s[i] = report.Point{T: start.AddDate(0, 0, i), V: value(i)}
	}
	return s
}

func TestLayout30PointsIn600x250(t *testing.T) {
	// 30 daily points sweeping 800..1200.
	series := seriesOf(30, func(i int) float64 { return 800 + 400*float64(i)/29 })
	region := canvas.Region{Name: "chart", X: 0, Y: 0, W: 600, H: 250}

	cl, err := Layout(series, "Daily usage", region, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if cl.Region != region {
		t.Errorf("bounding box %+v, want exactly the region %+v", cl.Region, region)
	}
	if !region.Contains(cl.Plot) {
		t.Errorf("plot %+v escapes region", cl.Plot)
	}
	if math.Abs(cl.YMin-790) > 1e-9 || math.Abs(cl.YMax-1210) > 1e-9 {
		t.Errorf("y range [%v, %v], want [790, 1210]", cl.YMin, cl.YMax)
	}
	if cl.LabelFontSize != DefaultOptions().LabelSizes[0] {
		t.Errorf("label font %v, want top of ladder in a generous region", cl.LabelFontSize)
	}
	if len(cl.Rolling) != len(series) {
		t.Errorf("rolling overlay has %d points, want %d", len(cl.Rolling), len(series))
	}
	if cl.Latest != "Latest: 1,200" {
		t.Errorf("annotation %q", cl.Latest)
	}

	for _, p := range cl.Points {
		if p.X < cl.Plot.X-1e-9 || p.X > cl.Plot.Right()+1e-9 {
			t.Errorf("point x=%v outside plot", p.X)
		}
		if p.Y < cl.Plot.Y-1e-9 || p.Y > cl.Plot.Bottom()+1e-9 {
			t.Errorf("point y=%v outside plot", p.Y)
		}
	}
	for _, tick := range cl.XTicks {
		if tick.Pos < cl.Plot.X-1e-9 || tick.Pos > cl.Plot.Right()+1e-9 {
			t.Errorf("x tick at %v outside plot", tick.Pos)
		}
	}
}

func TestLayoutXLabelExtentsStayInsideRegion(t *testing.T) {
	// X labels are centered on their ticks, so the outermost ones hang half
	// a label past the plot edges; the reserved gutters must keep the full
	// extent inside the region.
	series := seriesOf(30, func(i int) float64 { return 800 + 400*float64(i)/29 })
	regions := []canvas.Region{
		{Name: "chart", X: 0, Y: 0, W: 600, H: 250},
		{Name: "narrow", X: 40, Y: 20, W: 280, H: 160},
	}

	for _, region := range regions {
		cl, err := Layout(series, "Daily usage", region, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}

		for _, tick := range cl.XTicks {
			half := layout.TextWidth(tick.Label, cl.LabelFontSize) / 2
			if tick.Pos-half < region.X-1e-9 || tick.Pos+half > region.Right()+1e-9 {
				t.Errorf("%s: label %q spans [%.2f, %.2f], region x is [%.2f, %.2f]",
					region.Name, tick.Label, tick.Pos-half, tick.Pos+half, region.X, region.Right())
			}
		}
		for _, tick := range cl.YTicks {
			left := cl.Plot.X - labelGap - layout.TextWidth(tick.Label, cl.LabelFontSize)
			if left < region.X-1e-9 {
				t.Errorf("%s: y label %q starts at %.2f, before region left %.2f",
					region.Name, tick.Label, left, region.X)
			}
		}
	}
}

func TestTitleBaselineInsideFrame(t *testing.T) {
	series := seriesOf(10, func(i int) float64 { return float64(100 + i) })
	region := canvas.Region{Name: "chart", X: 100, Y: 50, W: 600, H: 250}
	opts := DefaultOptions()

	cl, err := Layout(series, "Daily usage", region, opts)
	if err != nil {
		t.Fatal(err)
	}

	want := region.Y + opts.Pad + opts.TitleSize
	if math.Abs(cl.titleBaseline()-want) > 1e-9 {
		t.Errorf("title baseline %v, want %v", cl.titleBaseline(), want)
	}
	if top := cl.titleBaseline() - cl.TitleFontSize; top < region.Y+opts.Pad-1e-9 {
		t.Errorf("title glyph tops at %v rise into the padding band ending at %v", top, region.Y+opts.Pad)
	}
	if !bytes.Contains(RenderSVG(cl), []byte(fmt.Sprintf(`y="%.1f"`, want))) {
		t.Error("rendered title does not sit at the frame baseline")
	}
}

func TestAnnotationClampedAtPlotTop(t *testing.T) {
	// A rising series puts the last point near the plot's top edge; without
	// a title band above it the annotation baseline must be clamped inside
	// the frame.
	series := seriesOf(10, func(i int) float64 { return float64(100 + i*50) })
	cl, err := Layout(series, "", canvas.Region{W: 600, H: 250}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	last := cl.Points[len(cl.Points)-1]
	floor := cl.Frame.Y + cl.LabelFontSize
	if y := cl.annotationY(last); y < floor-1e-9 {
		t.Errorf("annotation baseline %v above frame floor %v", y, floor)
	}

	// Away from the top edge the baseline tracks the marker.
	low := cl.Points[0]
	if y, want := cl.annotationY(low), low.Y-markerRadius-2; math.Abs(y-want) > 1e-9 {
		t.Errorf("annotation baseline %v, want %v next to the marker", y, want)
	}
}

func TestLayoutEmptySeries(t *testing.T) {
	_, err := Layout(nil, "", canvas.Region{W: 600, H: 250}, DefaultOptions())
	if errors.GetCode(err) != errors.ErrCodeEmptySeries {
		t.Fatalf("got %v, want EMPTY_SERIES", err)
	}
}

func TestLayoutSinglePoint(t *testing.T) {
	series := seriesOf(1, func(int) float64 { return 500 })
	region := canvas.Region{W: 600, H: 250}

	cl, err := Layout(series, "", region, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !cl.Single {
		t.Fatal("one-point series not marked single")
	}
	if cl.RefY != cl.Points[0].Y {
		t.Errorf("reference line y=%v, want marker y=%v", cl.RefY, cl.Points[0].Y)
	}
	if len(cl.XTicks) != 1 || cl.XTicks[0].Pos != cl.Plot.CenterX() {
		t.Errorf("single point tick %+v, want centered", cl.XTicks)
	}
	if cl.YMin >= cl.YMax {
		t.Errorf("degenerate y range [%v, %v]", cl.YMin, cl.YMax)
	}
}

func TestAxisRange(t *testing.T) {
	tests := []struct {
		name           string
		lo, hi         float64
		wantLo, wantHi float64
	}{
		{name: "padded span", lo: 800, hi: 1200, wantLo: 790, wantHi: 1210},
		{name: "flat nonzero", lo: 100, hi: 100, wantLo: 99, wantHi: 101},
		{name: "flat zero", lo: 0, hi: 0, wantLo: -1, wantHi: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := axisRange(tt.lo, tt.hi)
			if math.Abs(lo-tt.wantLo) > 1e-9 || math.Abs(hi-tt.wantHi) > 1e-9 {
				t.Errorf("axisRange(%v, %v) = (%v, %v), want (%v, %v)", tt.lo, tt.hi, lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestNiceTicks(t *testing.T) {
	got := niceTicks(790, 1210, 5)
	want := []float64{800, 900, 1000, 1100, 1200}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFitXTicksReducesCountAtMinFont(t *testing.T) {
	opts := DefaultOptions()
	opts.TickSpacing = 20

	n, font := fitXTicks(30, 200, opts)
	if font != opts.LabelSizes[len(opts.LabelSizes)-1] {
		t.Errorf("font %v, want ladder bottom when every size collides", font)
	}
	if n >= opts.MaxTicks {
		t.Errorf("tick count %d not reduced", n)
	}
	spacing := 200 / float64(n-1)
	if w := labelWidthAt(font); w > spacing {
		t.Errorf("labels still collide: width %v > spacing %v", w, spacing)
	}
}

func labelWidthAt(size float64) float64 {
	return float64(len(xLabelFormat))*size*0.55 + labelGap
}

func TestRenderSVGDeterministic(t *testing.T) {
	series := seriesOf(10, func(i int) float64 { return float64(100 + i*i) })
	region := canvas.Region{W: 600, H: 250}

	cl, err := Layout(series, "Usage <trend>", region, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	a := RenderSVG(cl)
	b := RenderSVG(cl)
	if !bytes.Equal(a, b) {
		t.Error("repeated renders differ")
	}
	if !bytes.Contains(a, []byte("<polyline")) {
		t.Error("line chart missing polyline")
	}
	if !bytes.Contains(a, []byte("Usage &lt;trend&gt;")) {
		t.Error("title not escaped")
	}
}

func TestRenderSVGBars(t *testing.T) {
	series := seriesOf(5, func(i int) float64 { return float64(10 + i) })
	opts := DefaultOptions()
	opts.Kind = KindBar
	opts.RollingWindow = 0

	cl, err := Layout(series, "", canvas.Region{W: 400, H: 200}, opts)
	if err != nil {
		t.Fatal(err)
	}
	svg := RenderSVG(cl)
	if !bytes.Contains(svg, []byte("<rect")) {
		t.Error("bar chart missing rects")
	}
	if bytes.Contains(svg, []byte("<polyline")) {
		t.Error("bar chart should not draw a series polyline")
	}
}
