// Package layout places KPI tiles and narrative text blocks into canvas
// regions without overflow.
//
// Both layouts share the same fit discipline: try the content at the most
// generous settings, then loosen constraints in a fixed priority order until
// it fits. For tiles the order is shrink horizontal padding, shrink font,
// truncate the label. For text blocks it is shrink font, then truncate
// trailing lines behind a continuation marker. The relaxation steps are an
// explicit ordered list evaluated top-down, so a new step can be appended
// without restructuring the fit loop.
//
// Text measurement uses an estimated glyph-width model (see measure.go)
// rather than rasterized font metrics, keeping layout deterministic across
// machines with different font installations.
package layout
