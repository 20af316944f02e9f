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
		{"last cell", 29, 24, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
			if got := r.ContainsPoint(Pt(tc.x, tc.y)); got != tc.expected {
				t.Errorf("ContainsPoint(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectClampPoint(t *testing.T) {
	r := NewRect(0, 0, 4, 25)

	tests := []struct {
		in, expected Point
	}{
		{Pt(2, 3), Pt(2, 3)},
		{Pt(-1, 3), Pt(0, 3)},
		{Pt(4, 3), Pt(3, 3)},
		{Pt(2, -7), Pt(2, 0)},
		{Pt(9, 40), Pt(3, 24)},
	}

	for _, tc := range tests {
		got := r.ClampPoint(tc.in)
		if got != tc.expected {
			t.Errorf("ClampPoint(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
		if !r.ContainsPoint(got) {
			t.Errorf("ClampPoint(%v) = %v is outside %+v", tc.in, got, r)
		}
	}

	empty := NewRect(3, 4, 0, 0)
	if got := empty.ClampPoint(Pt(10, 10)); got != Pt(3, 4) {
		t.Errorf("empty rect ClampPoint = %v, expected origin", got)
	}
}

func TestPointAdd(t *testing.T) {
	p := Pt(1, 2).Add(-1, 3)
	if p != Pt(0, 5) {
		t.Errorf("Add = %v, expected (0,5)", p)
	}
	if p.String() != "(0,5)" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
