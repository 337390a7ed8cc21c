package layout

import (
	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/report"
)

// TileLayout records how one KPI tile was fitted: its final rectangle, the
// chosen font sizes, and whether the label had to be truncated.
type TileLayout struct {
	KPI           report.KPI    `json:"kpi"`
	Rect          canvas.Region `json:"rect"`
	Label         string        `json:"label"`
	LabelFontSize float64       `json:"label_font_size"`
	ValueFontSize float64       `json:"value_font_size"`
	PadX          float64       `json:"pad_x"`
	PadY          float64       `json:"pad_y"`
	ShowHint      bool          `json:"show_hint,omitempty"`
	Truncated     bool          `json:"truncated,omitempty"`
}

// Tiles lays the ordered KPI list into the region as a grid of equal-width
// cells: a single row when the count allows, two rows otherwise.
//
// Zero KPIs produce an empty result and no error; more than opts.MaxTiles
// fails with TOO_MANY_TILES (the caller must pre-filter).
func Tiles(kpis []report.KPI, region canvas.Region, opts TileOptions) ([]TileLayout, error) {
	if len(kpis) == 0 {
		return nil, nil
	}
	if len(kpis) > opts.MaxTiles {
		return nil, errors.New(errors.ErrCodeTooManyTiles,
			"%d KPI tiles exceed the configured maximum of %d", len(kpis), opts.MaxTiles)
	}

	cells := partitionCells(region, len(kpis), opts)

	out := make([]TileLayout, len(kpis))
	for i, kpi := range kpis {
		out[i] = fitTile(kpi, cells[i], opts)
	}
	return out, nil
}

// partitionCells splits the region into n equal-width cells, wrapping to a
// second row when n exceeds the per-row maximum. Cells are row-major and
// never extend outside the region.
func partitionCells(region canvas.Region, n int, opts TileOptions) []canvas.Region {
	rows := 1
	if n > opts.MaxPerRow {
		rows = 2
	}
	cols := (n + rows - 1) / rows

	cellW := (region.W - float64(cols-1)*opts.GapX) / float64(cols)
	cellH := (region.H - float64(rows-1)*opts.GapY) / float64(rows)

	cells := make([]canvas.Region, n)
	for i := range cells {
		row, col := i/cols, i%cols
		cells[i] = canvas.Region{
			Name: region.Name,
			X:    region.X + float64(col)*(cellW+opts.GapX),
			Y:    region.Y + float64(row)*(cellH+opts.GapY),
			W:    cellW,
			H:    cellH,
		}
	}
	return cells
}

// tileFit is the mutable state the relaxation ladder drives toward a fit.
type tileFit struct {
	opts      TileOptions
	cell      canvas.Region
	kpi       report.KPI
	padX      float64
	sizeIdx   int
	label     string
	truncated bool
}

// tileRelaxations is the ordered relaxation ladder for tiles. Steps are
// tried top-down: shrink padding before giving up font size, give up font
// size before mutilating the label. Each step loosens its constraint a
// little and reports whether it could still act; append new steps here
// rather than adding branches to the fit loop.
var tileRelaxations = []struct {
	name  string
	apply func(*tileFit) bool
}{
	{"shrink_padding", func(f *tileFit) bool {
		if f.padX <= f.opts.MinPadX {
			return false
		}
		f.padX -= 2
		if f.padX < f.opts.MinPadX {
			f.padX = f.opts.MinPadX
		}
		return true
	}},
	{"shrink_font", func(f *tileFit) bool {
		if f.sizeIdx >= len(f.opts.ValueSizes)-1 {
			return false
		}
		f.sizeIdx++
		return true
	}},
	{"truncate_label", func(f *tileFit) bool {
		maxChars := MaxChars(f.innerWidth(), f.opts.LabelSize)
		shortened := TruncateWithMarker(f.kpi.Label, f.opts.Marker, maxChars)
		if shortened == f.label {
			return false
		}
		f.label = shortened
		f.truncated = true
		return true
	}},
}

func (f *tileFit) innerWidth() float64  { return f.cell.W - 2*f.padX }
func (f *tileFit) innerHeight() float64 { return f.cell.H - 2*f.opts.PadY }
func (f *tileFit) valueSize() float64   { return f.opts.ValueSizes[f.sizeIdx] }

// fits reports whether label and value both fit the padded cell interior at
// the current state.
func (f *tileFit) fits() bool {
	w := f.innerWidth()
	if TextWidth(f.label, f.opts.LabelSize) > w {
		return false
	}
	if TextWidth(f.kpi.Value, f.valueSize()) > w {
		return false
	}
	stack := LineHeight(f.opts.LabelSize) + LineHeight(f.valueSize())
	return stack <= f.innerHeight()
}

// fitTile fits one KPI into its cell. It starts at the most generous
// settings (largest font, full padding) and walks the relaxation ladder
// until the content fits or every step is exhausted; the bottom of the
// ladder is accepted as-is so a tile never moves or grows beyond its cell.
func fitTile(kpi report.KPI, cell canvas.Region, opts TileOptions) TileLayout {
	f := &tileFit{
		opts:  opts,
		cell:  cell,
		kpi:   kpi,
		padX:  opts.PadX,
		label: kpi.Label,
	}

	for !f.fits() {
		stepped := false
		for _, r := range tileRelaxations {
			if r.apply(f) {
				stepped = true
				break
			}
		}
		if !stepped {
			break
		}
	}

	// The hint rides along only when the cell still has room under the
	// label+value stack.
	stack := LineHeight(opts.LabelSize) + LineHeight(f.valueSize())
	showHint := kpi.Hint != "" &&
		stack+LineHeight(opts.LabelSize) <= f.innerHeight() &&
		TextWidth(kpi.Hint, opts.LabelSize) <= f.innerWidth()

	return TileLayout{
		KPI:           kpi,
		Rect:          cell,
		Label:         f.label,
		LabelFontSize: opts.LabelSize,
		ValueFontSize: f.valueSize(),
		PadX:          f.padX,
		PadY:          opts.PadY,
		ShowHint:      showHint,
		Truncated:     f.truncated,
	}
}
