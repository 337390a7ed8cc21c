package deck

import (
	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/chart"
	"github.com/insightdeck/insightdeck/pkg/layout"
)

// ElementKind discriminates what a placed element carries.
type ElementKind string

const (
	ElementTitle     ElementKind = "title"
	ElementSubtitle  ElementKind = "subtitle"
	ElementAccentBar ElementKind = "accent_bar"
	ElementTile      ElementKind = "tile"
	ElementChart     ElementKind = "chart"
	ElementSection   ElementKind = "section"
	ElementFooter    ElementKind = "footer"
)

// Element is one placed piece of slide content with its final geometry.
// Exactly one of the content fields is set, matching Kind.
type Element struct {
	Kind ElementKind   `json:"kind"`
	Rect canvas.Region `json:"rect"`

	// Text content for title, subtitle, and footer elements.
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	Tile    *layout.TileLayout    `json:"tile,omitempty"`
	Chart   *chart.ChartLayout    `json:"chart,omitempty"`
	Section *layout.SectionLayout `json:"section,omitempty"`
}

// Slide is one fully laid out slide.
type Slide struct {
	Kind     canvas.SlideKind `json:"kind"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Elements []Element        `json:"elements"`
}

// Document is the assembled deck: every element of every slide with final
// geometry, font sizes, and truncation flags. Identical inputs always
// produce an identical Document.
type Document struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}
