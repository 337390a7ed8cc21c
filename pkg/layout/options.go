package layout

// DefaultMarker is the literal appended when content is cut to fit.
const DefaultMarker = "…"

// TileOptions configures the KPI tile layout.
// The zero value is not usable; start from DefaultTileOptions.
type TileOptions struct {
	// MaxTiles is the hard cap on tile count; more fails with TOO_MANY_TILES.
	MaxTiles int `toml:"max_tiles"`

	// MaxPerRow is the most tiles placed in a single row before the layout
	// wraps to a second row to keep tiles above a readable width.
	MaxPerRow int `toml:"max_per_row"`

	// Gaps between tiles.
	GapX float64 `toml:"gap_x"`
	GapY float64 `toml:"gap_y"`

	// PadX is the preferred horizontal padding inside a tile; MinPadX is the
	// floor the fit ladder may shrink it to. PadY is fixed.
	PadX    float64 `toml:"pad_x"`
	MinPadX float64 `toml:"min_pad_x"`
	PadY    float64 `toml:"pad_y"`

	// ValueSizes is the descending font-size candidate ladder for the KPI
	// value. LabelSize is the fixed size for the tile label.
	ValueSizes []float64 `toml:"value_sizes"`
	LabelSize  float64   `toml:"label_size"`

	// Marker is appended to labels truncated by the fit ladder.
	Marker string `toml:"marker"`
}

// DefaultTileOptions returns the built-in tile layout configuration.
func DefaultTileOptions() TileOptions {
	return TileOptions{
		MaxTiles:   6,
		MaxPerRow:  4,
		GapX:       18,
		GapY:       12,
		PadX:       16,
		MinPadX:    4,
		PadY:       12,
		ValueSizes: []float64{24, 22, 20, 18, 16, 14, 12, 11, 10, 9},
		LabelSize:  10,
		Marker:     DefaultMarker,
	}
}

// TextOptions configures the narrative text block layout.
type TextOptions struct {
	// Columns is how many columns sections are distributed across.
	Columns int `toml:"columns"`

	// Gaps between section sub-rectangles.
	GapX float64 `toml:"gap_x"`
	GapY float64 `toml:"gap_y"`

	// Pad is the inner padding of each section sub-rectangle.
	Pad float64 `toml:"pad"`

	// FontSizes is the descending candidate ladder for bullet text.
	FontSizes []float64 `toml:"font_sizes"`

	// HeadingSize is the fixed font size for section headings.
	HeadingSize float64 `toml:"heading_size"`

	// Marker terminates the last visible line when bullets are truncated.
	Marker string `toml:"marker"`
}

// DefaultTextOptions returns the built-in text layout configuration.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Columns:     2,
		GapX:        28,
		GapY:        20,
		Pad:         10,
		FontSizes:   []float64{13, 12, 11, 10, 9, 8},
		HeadingSize: 15,
		Marker:      DefaultMarker,
	}
}
