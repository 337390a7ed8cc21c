// Package report computes the content side of a deck: KPI values, the usage
// trend series, and the narrative appendix sections.
//
// Everything in this package is deterministic data transformation. The layout
// engine consumes the resulting values without knowing how they were derived,
// so the narrative generator could later be swapped for something smarter
// without touching layout code.
package report

import "time"

// KPI is one tile's worth of content: a short label and a pre-formatted value.
// Values are formatted upstream so the layout engine only measures strings.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

// Point is a single observation in a time series.
type Point struct {
	T time.Time `json:"t"`
	V float64   `json:"v"`
}

// Series is an ordered, timestamp-monotonic sequence of observations.
type Series []Point

// MinMax returns the smallest and largest values in the series.
// It returns zeros for an empty series; callers guard against that upstream.
func (s Series) MinMax() (lo, hi float64) {
	if len(s) == 0 {
		return 0, 0
	}
	lo, hi = s[0].V, s[0].V
	for _, p := range s[1:] {
		if p.V < lo {
			lo = p.V
		}
		if p.V > hi {
			hi = p.V
		}
	}
	return lo, hi
}

// Span returns the first and last timestamps of the series.
func (s Series) Span() (from, to time.Time) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}
	}
	return s[0].T, s[len(s)-1].T
}

// RollingMean returns the trailing mean of the series over the given window
// size, with shorter prefixes averaged over what is available. Used for the
// smoothed overlay line on the trend chart.
func (s Series) RollingMean(window int) Series {
	if window < 1 {
		window = 1
	}
	out := make(Series, len(s))
	var sum float64
	for i, p := range s {
		sum += p.V
		if i >= window {
			sum -= s[i-window].V
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = Point{T: p.T, V: sum / float64(n)}
	}
	return out
}

// TextSection is one narrative block for the appendix: a heading and a list
// of bullet lines. Weight biases how much vertical space the section is
// allocated relative to its siblings (zero means equal share).
type TextSection struct {
	Heading string   `json:"heading"`
	Bullets []string `json:"bullets"`
	Weight  float64  `json:"weight,omitempty"`
}
