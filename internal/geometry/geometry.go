// Package geometry provides the 2D point math underlying all pose scoring.
package geometry

import "math"

// Point represents a 2D point in image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
	}
}

// AngleDegrees returns the unsigned interior angle at p2 formed by the rays
// to p1 and p3, in degrees within [0, 180]. It is computed from the
// difference of the two atan2 headings and folded into range, so swapping
// p1 and p3 never changes the result.
//
// The angle is undefined when p1 or p3 coincides with the vertex; ok is
// false in that case and callers must skip whatever check depended on it.
func AngleDegrees(p1, p2, p3 Point) (angle float64, ok bool) {
	if p1 == p2 || p3 == p2 {
		return 0, false
	}

	rad := math.Atan2(p3.Y-p2.Y, p3.X-p2.X) - math.Atan2(p1.Y-p2.Y, p1.X-p2.X)
	deg := math.Abs(rad * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}

	return deg, true
}
