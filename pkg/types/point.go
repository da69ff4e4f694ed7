package types

import "math"

// Point is a 2D vector of float32 coordinates. It is used for locations,
// velocities and any other planar quantity.
type Point struct {
	X float32
	Y float32
}

// NewPoint creates a Point from its coordinates.
func NewPoint(x, y float32) Point {
	return Point{X: x, Y: y}
}

func (Point) Kind() Kind { return KindPoint }

func (p Point) String() string {
	return "(" + formatFloat(p.X) + ", " + formatFloat(p.Y) + ")"
}

func (Point) isValue() {}

// ToArray returns the coordinates as [x, y].
func (p Point) ToArray() [2]float32 {
	return [2]float32{p.X, p.Y}
}

// Add adds other to p in place.
func (p *Point) Add(other Point) {
	p.X += other.X
	p.Y += other.Y
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Div returns p with both coordinates divided by n.
func (p Point) Div(n int) Point {
	return Point{X: p.X / float32(n), Y: p.Y / float32(n)}
}

// MultiplyScalar scales p in place.
func (p *Point) MultiplyScalar(scalar float32) {
	p.X *= scalar
	p.Y *= scalar
}

// Normalize scales p in place to unit length. A zero-length point is left
// unchanged.
func (p *Point) Normalize() {
	length := p.Length()
	if length != 0 {
		p.X /= length
		p.Y /= length
	}
}

// Length returns the euclidean length of p.
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

// DistanceTo returns the distance between p and other.
func (p Point) DistanceTo(other Point) float32 {
	return other.Sub(p).Length()
}

// Rotation returns the angle of p in radians, measured from the positive x axis.
func (p Point) Rotation() float32 {
	return float32(math.Atan2(float64(p.Y), float64(p.X)))
}

// PerpendicularLeft returns the vector perpendicular to p, pointing left.
func (p Point) PerpendicularLeft() Point {
	return Point{X: p.Y, Y: -p.X}
}

// PerpendicularRight returns the vector perpendicular to p, pointing right.
func (p Point) PerpendicularRight() Point {
	return Point{X: -p.Y, Y: p.X}
}

// SumPoints returns the component-wise sum of points.
func SumPoints(points ...Point) Point {
	var sum Point
	for _, p := range points {
		sum.Add(p)
	}
	return sum
}
