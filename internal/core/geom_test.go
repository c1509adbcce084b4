package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 1, 1),
			b:        NewRect(0.5, 0.99, 1, 1),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"bottom-left corner", V(10, 10), true},
		{"top-right edge (exclusive)", V(30, 25), false},
		{"outside left", V(5, 15), false},
		{"outside above", V(15, 26), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectDistanceTo(t *testing.T) {
	r := NewRect(0, 0, 2, 2)

	if d := r.DistanceTo(V(1, 1)); d != 0 {
		t.Errorf("DistanceTo(inside) = %f, expected 0", d)
	}
	if d := r.DistanceTo(V(5, 1)); d != 3 {
		t.Errorf("DistanceTo(right) = %f, expected 3", d)
	}
	if d := r.DistanceTo(V(5, 6)); math.Abs(d-5) > 1e-9 {
		t.Errorf("DistanceTo(corner) = %f, expected 5", d)
	}
}

func TestVecLerp(t *testing.T) {
	v := V(0, 4).Lerp(V(10, 0), 0.3)
	if math.Abs(v.X-3) > 1e-9 || math.Abs(v.Y-2.8) > 1e-9 {
		t.Errorf("Lerp() = %v, expected (3, 2.8)", v)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(3) != 1 || Sign(-0.1) != -1 || Sign(0) != 0 {
		t.Error("Sign() returned an unexpected value")
	}
}
