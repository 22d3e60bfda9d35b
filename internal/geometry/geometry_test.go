package geometry

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestAngleDegrees_RightAngle(t *testing.T) {
	angle, ok := AngleDegrees(Point{X: 1, Y: 0}, Point{X: 0, Y: 0}, Point{X: 0, Y: 1})
	if !ok {
		t.Fatal("expected angle to be defined")
	}
	if math.Abs(angle-90) > tolerance {
		t.Errorf("expected 90 degrees, got %v", angle)
	}
}

func TestAngleDegrees_Collinear(t *testing.T) {
	// Points on one side of the vertex form a zero angle.
	angle, ok := AngleDegrees(Point{X: 1, Y: 0}, Point{X: 0, Y: 0}, Point{X: 2, Y: 0})
	if !ok {
		t.Fatal("expected angle to be defined")
	}
	if math.Abs(angle) > tolerance {
		t.Errorf("expected 0 degrees for same-side collinear points, got %v", angle)
	}

	// Points on opposite sides form a straight angle.
	angle, ok = AngleDegrees(Point{X: -1, Y: 0}, Point{X: 0, Y: 0}, Point{X: 2, Y: 0})
	if !ok {
		t.Fatal("expected angle to be defined")
	}
	if math.Abs(angle-180) > tolerance {
		t.Errorf("expected 180 degrees for opposite-side collinear points, got %v", angle)
	}
}

func TestAngleDegrees_SwapInvariance(t *testing.T) {
	cases := []struct {
		name       string
		p1, p2, p3 Point
	}{
		{"acute", Point{X: 3, Y: 1}, Point{X: 0, Y: 0}, Point{X: 1, Y: 4}},
		{"obtuse", Point{X: -2, Y: 1}, Point{X: 1, Y: 1}, Point{X: 3, Y: 4}},
		{"reflex source", Point{X: 0, Y: -5}, Point{X: 2, Y: 2}, Point{X: -3, Y: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, ok1 := AngleDegrees(tc.p1, tc.p2, tc.p3)
			b, ok2 := AngleDegrees(tc.p3, tc.p2, tc.p1)
			if !ok1 || !ok2 {
				t.Fatal("expected angles to be defined")
			}
			if math.Abs(a-b) > tolerance {
				t.Errorf("swap changed angle: %v vs %v", a, b)
			}
		})
	}
}

func TestAngleDegrees_Range(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: -1},
		{X: 5, Y: -3}, {X: -4, Y: 7}, {X: 2.5, Y: 2.5}, {X: -0.5, Y: 3},
	}

	for _, p1 := range points {
		for _, p2 := range points {
			for _, p3 := range points {
				angle, ok := AngleDegrees(p1, p2, p3)
				if !ok {
					continue
				}
				if angle < 0 || angle > 180 {
					t.Fatalf("angle %v out of [0,180] for %v %v %v", angle, p1, p2, p3)
				}
			}
		}
	}
}

func TestAngleDegrees_DegenerateVertex(t *testing.T) {
	if _, ok := AngleDegrees(Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, Point{X: 2, Y: 2}); ok {
		t.Error("expected undefined angle when p1 equals the vertex")
	}
	if _, ok := AngleDegrees(Point{X: 2, Y: 2}, Point{X: 1, Y: 1}, Point{X: 1, Y: 1}); ok {
		t.Error("expected undefined angle when p3 equals the vertex")
	}
}

func TestDistance(t *testing.T) {
	d := Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4})
	if math.Abs(d-5) > tolerance {
		t.Errorf("expected distance 5, got %v", d)
	}

	if d := Distance(Point{X: 2, Y: 7}, Point{X: 2, Y: 7}); d != 0 {
		t.Errorf("expected zero distance for identical points, got %v", d)
	}
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(Point{X: 0, Y: 0}, Point{X: 4, Y: 10})
	if m.X != 2 || m.Y != 5 {
		t.Errorf("expected midpoint (2,5), got (%v,%v)", m.X, m.Y)
	}
}
