package chart

import (
	"fmt"
	"math"

	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/layout"
	"github.com/insightdeck/insightdeck/pkg/report"
)

const (
	// Fraction of the y span added on each side so data never touches the
	// plot edge.
	axisPadFrac = 0.025

	// Fallbacks for a flat series, where the span itself is zero.
	flatPadFrac = 0.01
	flatPadMin  = 1.0

	xLabelFormat = "01-02"
	labelGap     = 4.0
	titleGap     = 4.0
	yTickTarget  = 5
)

// Tick is one axis tick: its data value, rendered label, and canvas position
// along the axis.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"`
}

// PlotPoint is a series observation mapped into canvas coordinates.
type PlotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	V float64 `json:"v"`
}

// ChartLayout is the fitted chart: final geometry for every mark, tick, and
// label, all inside Region. It is plain data shared by the SVG and raster
// renderers.
type ChartLayout struct {
	Region canvas.Region `json:"region"`
	Frame  canvas.Region `json:"frame"`
	Plot   canvas.Region `json:"plot"`
	Kind   Kind          `json:"kind"`

	Title         string  `json:"title,omitempty"`
	TitleFontSize float64 `json:"title_font_size,omitempty"`
	LabelFontSize float64 `json:"label_font_size"`

	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`

	XTicks []Tick `json:"x_ticks"`
	YTicks []Tick `json:"y_ticks"`

	Points  []PlotPoint `json:"points"`
	Rolling []PlotPoint `json:"rolling,omitempty"`

	// Single marks a one-point series, drawn as a marker on a full-width
	// flat reference line.
	Single bool    `json:"single,omitempty"`
	RefY   float64 `json:"ref_y,omitempty"`

	Latest string `json:"latest,omitempty"`
}

// Layout fits the series into the region. The returned geometry, labels and
// title included, never extends outside the region.
func Layout(series report.Series, title string, region canvas.Region, opts Options) (*ChartLayout, error) {
	if len(series) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySeries, "chart requires at least one data point")
	}
	if len(opts.LabelSizes) == 0 || opts.MinTicks < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "chart options need a label font ladder and a tick floor of 2")
	}

	lo, hi := axisRange(series.MinMax())
	yticks := niceTicks(lo, hi, yTickTarget)

	frame := region.Inset(opts.Pad)
	titleBand := 0.0
	if title != "" {
		titleBand = layout.LineHeight(opts.TitleSize) + titleGap
	}

	// The label font is fitted against a provisional plot width computed at
	// the top of the ladder; smaller fonts only widen the plot, so the fit
	// never regresses. X labels are centered on their tick, so half a label
	// hangs outside the first and last anchors: both gutters must absorb
	// that overhang or the labels would escape the frame.
	gutterTop, rightTop := xGutters(yticks, opts.LabelSizes[0])
	provisionalW := frame.W - gutterTop - rightTop
	n, font := fitXTicks(len(series), provisionalW, opts)

	leftGutter, rightGutter := xGutters(yticks, font)
	bottomGutter := layout.LineHeight(font) + labelGap
	plot := canvas.Region{
		Name: region.Name,
		X:    frame.X + leftGutter,
		Y:    frame.Y + titleBand,
		W:    frame.W - leftGutter - rightGutter,
		H:    frame.H - titleBand - bottomGutter,
	}

	cl := &ChartLayout{
		Region:        region,
		Frame:         frame,
		Plot:          plot,
		Kind:          opts.Kind,
		Title:         title,
		TitleFontSize: opts.TitleSize,
		LabelFontSize: font,
		YMin:          lo,
		YMax:          hi,
	}

	for _, v := range yticks {
		cl.YTicks = append(cl.YTicks, Tick{Value: v, Label: report.FormatCount(v), Pos: cl.yAt(v)})
	}
	cl.XTicks = xTicks(series, plot, n)
	cl.Points = cl.mapSeries(series)

	if len(series) == 1 {
		cl.Single = true
		cl.RefY = cl.Points[0].Y
	}
	if opts.RollingWindow > 0 && len(series) >= opts.RollingWindow {
		cl.Rolling = cl.mapSeries(series.RollingMean(opts.RollingWindow))
	}
	if opts.Annotate {
		cl.Latest = fmt.Sprintf("Latest: %s", report.FormatCount(series[len(series)-1].V))
	}
	return cl, nil
}

// titleBaseline is the text baseline for the chart title, sitting in the
// title band just below the frame's top edge.
func (cl *ChartLayout) titleBaseline() float64 {
	return cl.Frame.Y + cl.TitleFontSize
}

// annotationY is the baseline for the latest-value annotation, clamped so
// its ascenders never rise above the frame when the last point sits at the
// plot top.
func (cl *ChartLayout) annotationY(last PlotPoint) float64 {
	y := last.Y - markerRadius - 2
	if floor := cl.Frame.Y + cl.LabelFontSize; y < floor {
		y = floor
	}
	return y
}

// yAt maps a data value to a canvas y coordinate (y grows downward).
func (cl *ChartLayout) yAt(v float64) float64 {
	return cl.Plot.Bottom() - (v-cl.YMin)/(cl.YMax-cl.YMin)*cl.Plot.H
}

// mapSeries places the series in plot coordinates, spacing points by
// timestamp so gaps in the data show as gaps on the axis.
func (cl *ChartLayout) mapSeries(series report.Series) []PlotPoint {
	from, to := series.Span()
	span := to.Sub(from)

	out := make([]PlotPoint, len(series))
	for i, p := range series {
		frac := 0.5
		if span > 0 {
			frac = float64(p.T.Sub(from)) / float64(span)
		}
		out[i] = PlotPoint{X: cl.Plot.X + frac*cl.Plot.W, Y: cl.yAt(p.V), V: p.V}
	}
	return out
}

// axisRange pads the data extent so points clear the plot edges. A flat
// series gets a synthetic span so the axis never has zero height.
func axisRange(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		pad := math.Abs(lo) * flatPadFrac
		if pad == 0 {
			pad = flatPadMin
		}
		return lo - pad, hi + pad
	}
	pad := span * axisPadFrac
	return lo - pad, hi + pad
}

// niceTicks returns round-valued ticks covering [lo, hi] at close to the
// target count, using 1/2/2.5/5 step multiples.
func niceTicks(lo, hi float64, target int) []float64 {
	span := hi - lo
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))

	step := mag * 10
	for _, m := range []float64{1, 2, 2.5, 5} {
		if mag*m >= raw {
			step = mag * m
			break
		}
	}

	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// yGutter is the horizontal space reserved left of the plot for the widest
// y tick label at the given font.
func yGutter(ticks []float64, font float64) float64 {
	var widest float64
	for _, v := range ticks {
		if w := layout.TextWidth(report.FormatCount(v), font); w > widest {
			widest = w
		}
	}
	return widest + labelGap
}

// xGutters returns the left and right space reserved around the plot. The
// left side must hold the y labels and half of the first x label, whichever
// is wider; the right side holds half of the last x label.
func xGutters(yticks []float64, font float64) (left, right float64) {
	half := layout.TextWidth(xLabelFormat, font) / 2
	left = yGutter(yticks, font)
	if left < half {
		left = half
	}
	return left, half
}

// fitXTicks picks the x tick count from the plot width and the largest
// ladder font whose labels cannot collide at that count. If even the
// smallest font collides, the count is reduced instead.
func fitXTicks(points int, plotW float64, opts Options) (n int, font float64) {
	n = int(plotW/opts.TickSpacing) + 1
	if n > opts.MaxTicks {
		n = opts.MaxTicks
	}
	if n > points {
		n = points
	}
	if n < opts.MinTicks {
		n = opts.MinTicks
	}

	labelW := func(size float64) float64 {
		return layout.TextWidth(xLabelFormat, size) + labelGap
	}
	collides := func(n int, size float64) bool {
		if n < 2 {
			return false
		}
		return labelW(size) > plotW/float64(n-1)
	}

	for _, size := range opts.LabelSizes {
		if !collides(n, size) {
			return n, size
		}
	}

	font = opts.LabelSizes[len(opts.LabelSizes)-1]
	for n > opts.MinTicks && collides(n, font) {
		n--
	}
	return n, font
}

// xTicks spreads n tick labels over the series, always including the first
// and last points.
func xTicks(series report.Series, plot canvas.Region, n int) []Tick {
	if len(series) == 1 {
		p := series[0]
		return []Tick{{Value: p.V, Label: p.T.Format(xLabelFormat), Pos: plot.CenterX()}}
	}
	if n > len(series) {
		n = len(series)
	}

	from, to := series.Span()
	span := float64(to.Sub(from))

	ticks := make([]Tick, 0, n)
	seen := -1
	for i := 0; i < n; i++ {
		idx := int(math.Round(float64(i) * float64(len(series)-1) / float64(n-1)))
		if idx == seen {
			continue
		}
		seen = idx
		p := series[idx]
		frac := float64(p.T.Sub(from)) / span
		ticks = append(ticks, Tick{Value: p.V, Label: p.T.Format(xLabelFormat), Pos: plot.X + frac*plot.W})
	}
	return ticks
}
