package canvas

// Region is a named rectangle on the canvas reserved for one layout
// component's output. All coordinates are in points.
type Region struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"width"`
	H    float64 `json:"height"`
}

// Right returns the x coordinate of the region's right edge.
func (r Region) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the region's bottom edge.
func (r Region) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the region.
func (r Region) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the region.
func (r Region) CenterY() float64 { return r.Y + r.H/2 }

// Inset returns a copy of the region shrunk by pad on every side.
// If the region is too small for the padding, a zero-size region
// centered in r is returned.
func (r Region) Inset(pad float64) Region {
	if 2*pad >= r.W || 2*pad >= r.H {
		return Region{Name: r.Name, X: r.CenterX(), Y: r.CenterY()}
	}
	return Region{
		Name: r.Name,
		X:    r.X + pad,
		Y:    r.Y + pad,
		W:    r.W - 2*pad,
		H:    r.H - 2*pad,
	}
}

// Contains reports whether other lies fully inside r.
// A small epsilon absorbs floating-point drift from repeated partitioning.
func (r Region) Contains(other Region) bool {
	const eps = 1e-6
	return other.X >= r.X-eps &&
		other.Y >= r.Y-eps &&
		other.Right() <= r.Right()+eps &&
		other.Bottom() <= r.Bottom()+eps
}

// Overlaps reports whether r and other share interior area.
// Touching edges do not count as overlap.
func (r Region) Overlaps(other Region) bool {
	const eps = 1e-6
	return r.X < other.Right()-eps &&
		other.X < r.Right()-eps &&
		r.Y < other.Bottom()-eps &&
		other.Y < r.Bottom()-eps
}

// Empty reports whether the region has no drawable area.
func (r Region) Empty() bool { return r.W <= 0 || r.H <= 0 }
