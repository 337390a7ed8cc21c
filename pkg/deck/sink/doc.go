// Package sink serializes an assembled deck document into output formats.
//
// A sink transforms a [deck.Document] into final bytes:
//
//   - SVG: both slides stacked vertically in one document; the primary
//     format, rendered deterministically.
//   - JSON: the full document with geometry, font sizes, and truncation
//     flags, for external tools and tests.
//   - PDF and PNG: the SVG converted via rsvg-convert (requires librsvg).
//
// [deck.Document]: github.com/insightdeck/insightdeck/pkg/deck.Document
package sink
