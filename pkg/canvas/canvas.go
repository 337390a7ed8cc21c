package canvas

import (
	"github.com/BurntSushi/toml"

	"github.com/insightdeck/insightdeck/pkg/errors"
)

// SlideKind identifies one of the two fixed slides in a deck.
type SlideKind string

// The deck always consists of exactly these two slides.
const (
	SlideSummary  SlideKind = "summary"
	SlideAppendix SlideKind = "appendix"
)

// Region names shared between the canvas model and the assembler.
const (
	RegionHeader    = "header"
	RegionKPIRow    = "kpi_row"
	RegionChart     = "chart"
	RegionFooter    = "footer"
	RegionNarrative = "narrative"
)

// Spec holds the geometry constants the canvas model derives regions from.
// The zero value is not usable; start from DefaultSpec and override fields,
// or load a spec from a TOML file with LoadSpec.
type Spec struct {
	// Canvas dimensions in points. The defaults are the widescreen 16:9
	// surface (13.333 x 7.5 inches at 96 dpi).
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Outer margins between canvas edge and content.
	MarginX float64 `toml:"margin_x"`
	MarginY float64 `toml:"margin_y"`

	// Gap is the vertical spacing between stacked regions.
	Gap float64 `toml:"gap"`

	// Fixed-height bands.
	HeaderHeight  float64 `toml:"header_height"`
	FooterHeight  float64 `toml:"footer_height"`
	TileRowHeight float64 `toml:"tile_row_height"`
}

// DefaultSpec returns the built-in canvas geometry.
func DefaultSpec() Spec {
	return Spec{
		Width:         1280,
		Height:        720,
		MarginX:       72,
		MarginY:       40,
		Gap:           24,
		HeaderHeight:  96,
		FooterHeight:  32,
		TileRowHeight: 120,
	}
}

// LoadSpec reads a canvas spec from a TOML file, starting from the defaults
// so partial files only override what they name.
func LoadSpec(path string) (Spec, error) {
	spec := DefaultSpec()
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load canvas spec from %s", path)
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate checks that the spec describes a usable canvas: positive
// dimensions and enough room between margins and fixed bands for the
// variable-height regions.
func (s Spec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "canvas dimensions must be positive, got %gx%g", s.Width, s.Height)
	}
	if s.MarginX < 0 || s.MarginY < 0 || s.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidCanvas, "margins and gap cannot be negative")
	}
	if 2*s.MarginX >= s.Width {
		return errors.New(errors.ErrCodeInvalidCanvas, "horizontal margins (%g) exceed canvas width (%g)", 2*s.MarginX, s.Width)
	}
	fixed := 2*s.MarginY + s.HeaderHeight + s.TileRowHeight + s.FooterHeight + 3*s.Gap
	if fixed >= s.Height {
		return errors.New(errors.ErrCodeInvalidCanvas, "fixed bands (%g) leave no room on a %g-point canvas", fixed, s.Height)
	}
	return nil
}

// usableWidth is the content width between the horizontal margins.
func (s Spec) usableWidth() float64 { return s.Width - 2*s.MarginX }

// RegionsFor derives the named regions for the given slide kind.
// The result is a pure function of the spec: calling it twice with the same
// spec and kind yields identical regions. Every region lies fully inside the
// canvas; sibling regions never overlap.
//
// Unknown slide kinds fail with an INVALID_SLIDE_KIND error.
func (s Spec) RegionsFor(kind SlideKind) (map[string]Region, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch kind {
	case SlideSummary:
		return s.summaryRegions(), nil
	case SlideAppendix:
		return s.appendixRegions(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSlideKind, "unknown slide kind: %q", kind)
	}
}

func (s Spec) summaryRegions() map[string]Region {
	x := s.MarginX
	w := s.usableWidth()

	header := Region{Name: RegionHeader, X: x, Y: s.MarginY, W: w, H: s.HeaderHeight}
	kpis := Region{Name: RegionKPIRow, X: x, Y: header.Bottom() + s.Gap, W: w, H: s.TileRowHeight}
	footer := Region{Name: RegionFooter, X: x, Y: s.Height - s.MarginY - s.FooterHeight, W: w, H: s.FooterHeight}
	chart := Region{
		Name: RegionChart,
		X:    x,
		Y:    kpis.Bottom() + s.Gap,
		W:    w,
		H:    footer.Y - s.Gap - (kpis.Bottom() + s.Gap),
	}

	return map[string]Region{
		RegionHeader: header,
		RegionKPIRow: kpis,
		RegionChart:  chart,
		RegionFooter: footer,
	}
}

func (s Spec) appendixRegions() map[string]Region {
	x := s.MarginX
	w := s.usableWidth()

	header := Region{Name: RegionHeader, X: x, Y: s.MarginY, W: w, H: s.HeaderHeight}
	body := Region{
		Name: RegionNarrative,
		X:    x,
		Y:    header.Bottom() + s.Gap,
		W:    w,
		H:    s.Height - s.MarginY - (header.Bottom() + s.Gap),
	}

	return map[string]Region{
		RegionHeader:    header,
		RegionNarrative: body,
	}
}
