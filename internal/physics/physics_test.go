package physics

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, true},
		{"touching edge", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"touching bottom", Rect{0, 0, 10, 10}, Rect{0, 10, 10, 10}, false},
		{"apart", Rect{0, 0, 10, 10}, Rect{30, 30, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("intersection is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestBox(t *testing.T) {
	r := Box(100, 50, 4)
	if r != (Rect{X: 96, Y: 46, W: 8, H: 8}) {
		t.Errorf("Box(100, 50, 4) = %+v", r)
	}
	if r.Right() != 104 || r.Bottom() != 54 {
		t.Errorf("unexpected edges: right=%v bottom=%v", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned a value outside its bounds")
	}
}
