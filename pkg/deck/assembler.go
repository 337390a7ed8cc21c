package deck

import (
	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/chart"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/layout"
	"github.com/insightdeck/insightdeck/pkg/report"
)

// Font sizes for slide chrome. Header and footer text is short and the
// bands are sized for it, so no fit ladder applies here.
const (
	titleFontSize    = 26
	subtitleFontSize = 14
	footerFontSize   = 9
	accentBarHeight  = 4
)

// SummaryInputs is the content of the summary slide.
type SummaryInputs struct {
	Title      string
	Subtitle   string
	Footer     string
	KPIs       []report.KPI
	Series     report.Series
	ChartTitle string
}

// AppendixInputs is the content of the appendix slide.
type AppendixInputs struct {
	Title    string
	Subtitle string
	Sections []report.TextSection
}

// Assembler lays a deck out against one canvas spec and one set of layout
// options. It holds no mutable state and is safe for concurrent use.
type Assembler struct {
	spec  canvas.Spec
	tiles layout.TileOptions
	text  layout.TextOptions
	chart chart.Options
}

// Option configures an Assembler.
type Option func(*Assembler)

func WithCanvas(spec canvas.Spec) Option          { return func(a *Assembler) { a.spec = spec } }
func WithTileOptions(o layout.TileOptions) Option { return func(a *Assembler) { a.tiles = o } }
func WithTextOptions(o layout.TextOptions) Option { return func(a *Assembler) { a.text = o } }
func WithChartOptions(o chart.Options) Option     { return func(a *Assembler) { a.chart = o } }

// New returns an Assembler with default canvas and layout configuration.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		spec:  canvas.DefaultSpec(),
		tiles: layout.DefaultTileOptions(),
		text:  layout.DefaultTextOptions(),
		chart: chart.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble lays out both slides and returns the finished document. Any
// sub-layout failure aborts the whole assembly; there are no partial decks.
func (a *Assembler) Assemble(summary SummaryInputs, appendix AppendixInputs) (*Document, error) {
	if err := a.spec.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "canvas spec rejected")
	}

	summarySlide, err := a.assembleSummary(summary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "assembling summary slide")
	}
	appendixSlide, err := a.assembleAppendix(appendix)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "assembling appendix slide")
	}

	return &Document{
		Title:  summary.Title,
		Slides: []Slide{summarySlide, appendixSlide},
	}, nil
}

func (a *Assembler) assembleSummary(in SummaryInputs) (Slide, error) {
	regions, err := a.spec.RegionsFor(canvas.SlideSummary)
	if err != nil {
		return Slide{}, err
	}

	slide := Slide{Kind: canvas.SlideSummary, Width: a.spec.Width, Height: a.spec.Height}
	slide.Elements = headerElements(regions[canvas.RegionHeader], in.Title, in.Subtitle)

	tiles, err := layout.Tiles(in.KPIs, regions[canvas.RegionKPIRow], a.tiles)
	if err != nil {
		return Slide{}, err
	}
	for i := range tiles {
		slide.Elements = append(slide.Elements, Element{
			Kind: ElementTile,
			Rect: tiles[i].Rect,
			Tile: &tiles[i],
		})
	}

	cl, err := chart.Layout(in.Series, in.ChartTitle, regions[canvas.RegionChart], a.chart)
	if err != nil {
		return Slide{}, err
	}
	slide.Elements = append(slide.Elements, Element{Kind: ElementChart, Rect: cl.Region, Chart: cl})

	if in.Footer != "" {
		slide.Elements = append(slide.Elements, Element{
			Kind:     ElementFooter,
			Rect:     regions[canvas.RegionFooter],
			Text:     in.Footer,
			FontSize: footerFontSize,
		})
	}
	return slide, nil
}

func (a *Assembler) assembleAppendix(in AppendixInputs) (Slide, error) {
	regions, err := a.spec.RegionsFor(canvas.SlideAppendix)
	if err != nil {
		return Slide{}, err
	}

	slide := Slide{Kind: canvas.SlideAppendix, Width: a.spec.Width, Height: a.spec.Height}
	slide.Elements = headerElements(regions[canvas.RegionHeader], in.Title, in.Subtitle)

	blocks, err := layout.TextBlocks(in.Sections, regions[canvas.RegionNarrative], a.text)
	if err != nil {
		return Slide{}, err
	}
	for i := range blocks {
		slide.Elements = append(slide.Elements, Element{
			Kind:    ElementSection,
			Rect:    blocks[i].Rect,
			Section: &blocks[i],
		})
	}
	return slide, nil
}

// headerElements builds the title, optional subtitle, and accent bar that
// open every slide.
func headerElements(header canvas.Region, title, subtitle string) []Element {
	titleH := layout.LineHeight(titleFontSize)
	els := []Element{{
		Kind:     ElementTitle,
		Rect:     canvas.Region{Name: header.Name, X: header.X, Y: header.Y, W: header.W, H: titleH},
		Text:     title,
		FontSize: titleFontSize,
	}}

	y := header.Y + titleH
	if subtitle != "" {
		subH := layout.LineHeight(subtitleFontSize)
		els = append(els, Element{
			Kind:     ElementSubtitle,
			Rect:     canvas.Region{Name: header.Name, X: header.X, Y: y, W: header.W, H: subH},
			Text:     subtitle,
			FontSize: subtitleFontSize,
		})
		y += subH
	}

	els = append(els, Element{
		Kind: ElementAccentBar,
		Rect: canvas.Region{Name: header.Name, X: header.X, Y: header.Bottom() - accentBarHeight, W: header.W, H: accentBarHeight},
	})
	return els
}
