// Package deck assembles fitted layouts into a two-slide document: a
// summary slide (header, KPI tiles, trend chart, footer) and an appendix
// slide (header, narrative sections).
//
// The assembler resolves regions from the canvas spec, runs each layout
// component against its region, and fails as a whole if any component
// fails, so a produced Document is always completely laid out. The
// Document itself is plain geometry and content; serialization lives in
// the sink subpackage.
package deck
