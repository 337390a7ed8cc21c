// Package canvas defines the fixed presentation surface for deck generation.
//
// A Spec describes the slide geometry (canvas size, margins, gaps) and derives
// the named regions for each slide kind. Regions are immutable values: layout
// components read region geometry and produce placements, they never resize a
// region owned by another component.
//
// Coordinates are in points with the origin at the top-left corner and the
// y-axis pointing down, matching SVG user space.
package canvas
