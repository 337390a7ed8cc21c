package chart

// Kind selects the mark used for the series.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// Options configures chart fitting and rendering.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// Kind is the mark style for the primary series.
	Kind Kind `toml:"kind"`

	// Pad is the internal padding between the region edge and anything the
	// chart draws, in points.
	Pad float64 `toml:"pad"`

	// TickSpacing is the preferred horizontal space per x tick; the tick
	// count grows with plot width at this rate before the cap applies.
	TickSpacing float64 `toml:"tick_spacing"`

	// MinTicks and MaxTicks bound the x tick count.
	MinTicks int `toml:"min_ticks"`
	MaxTicks int `toml:"max_ticks"`

	// LabelSizes is the descending font ladder for tick labels.
	LabelSizes []float64 `toml:"label_sizes"`

	// TitleSize is the font size of the chart title.
	TitleSize float64 `toml:"title_size"`

	// RollingWindow enables a trailing-mean overlay line when the series has
	// at least this many points. Zero disables the overlay.
	RollingWindow int `toml:"rolling_window"`

	// Annotate draws a "Latest: N" callout at the final point.
	Annotate bool `toml:"annotate"`

	// Grid draws horizontal gridlines at the y ticks.
	Grid bool `toml:"grid"`
}

// DefaultOptions returns the built-in chart configuration.
func DefaultOptions() Options {
	return Options{
		Kind:          KindLine,
		Pad:           8,
		TickSpacing:   70,
		MinTicks:      2,
		MaxTicks:      10,
		LabelSizes:    []float64{10, 9, 8, 7},
		TitleSize:     13,
		RollingWindow: 7,
		Annotate:      true,
		Grid:          true,
	}
}
