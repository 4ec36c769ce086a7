// Package geom provides the small 2D vector primitives shared by the
// boil-down sampler, the polyline post-processor, the spatial index, and
// the CAMM-GL knife-offset emitter.
package geom

import "math"

// Point is a 2D point or vector.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64        { return math.Hypot(p.X, p.Y) }

// Unit returns the unit vector in p's direction, or the zero vector if
// p is (near) zero length.
func (p Point) Unit() Point {
	l := p.Len()
	if l < 1e-12 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Rotate rotates p counter-clockwise about the origin by rad radians,
// the standard DXF rotation-angle convention.
func (p Point) Rotate(rad float64) Point {
	s, c := math.Sin(rad), math.Cos(rad)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Angle returns p's direction in radians, atan2(y, x).
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// DistSq returns the squared Euclidean distance between a and b.
func DistSq(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 { return math.Sqrt(DistSq(a, b)) }

// Equal reports whether a and b are within eps of each other.
func Equal(a, b Point, eps float64) bool {
	return DistSq(a, b) <= eps*eps
}

// Lerp linearly interpolates between a and b at t in [0,1].
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// NormalizeAngle2Pi shifts angle into [from, from+2*pi+eps] (eps =
// 1e-9) by adding or subtracting full turns, used by ELLIPSE sampling
// (§4.4) to bring an end angle into that range, so an end exactly one
// full turn past the start keeps its 2*pi sweep.
func NormalizeAngle2Pi(angle, from float64) float64 {
	const twoPi = 2 * math.Pi
	const eps = 1e-9
	for angle < from {
		angle += twoPi
	}
	for angle > from+twoPi+eps {
		angle -= twoPi
	}
	return angle
}
