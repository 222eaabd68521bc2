package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		v, a0, a1, b0, b1, expected float64
	}{
		{150, 150, 600, 3, 21, 3},
		{600, 150, 600, 3, 21, 21},
		{375, 150, 600, 3, 21, 12},
		{5, 2, 2, 7, 9, 7}, // degenerate source range
	}

	for _, tc := range tests {
		if got := Lerp(tc.v, tc.a0, tc.a1, tc.b0, tc.b1); got != tc.expected {
			t.Errorf("Lerp(%v, %v, %v, %v, %v) = %v, expected %v", tc.v, tc.a0, tc.a1, tc.b0, tc.b1, got, tc.expected)
		}
	}
}
