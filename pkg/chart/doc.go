// Package chart fits a time series into a fixed region: axis ranges with
// edge padding, tick density scaled to the plot width, and tick label fonts
// chosen so consecutive labels cannot collide. The computed layout is pure
// data; rendering to SVG or PNG happens in separate passes over it.
//
// The guarantee callers rely on is that the rendered bounding box, axis
// labels and title included, equals the target region and never exceeds it.
package chart
