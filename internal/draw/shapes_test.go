package draw

import (
	"math"
	"testing"
)

func TestStarPointsAlternatesRadii(t *testing.T) {
	const (
		outer = 30.0
		ratio = 0.45
	)
	pts := StarPoints(100, 200, outer, ratio, 0, 5)
	if len(pts) != 10 {
		t.Fatalf("len = %d, want 10", len(pts))
	}
	for i, p := range pts {
		r := math.Hypot(p.X-100, p.Y-200)
		want := outer
		if i%2 == 1 {
			want = outer * ratio
		}
		if math.Abs(r-want) > 1e-9 {
			t.Errorf("vertex %d at radius %v, want %v", i, r, want)
		}
	}
	if math.Abs(pts[0].X-130) > 1e-9 || math.Abs(pts[0].Y-200) > 1e-9 {
		t.Errorf("first vertex = %+v, want (130, 200)", pts[0])
	}
}

func TestStarPointsFullTurnIsIdentity(t *testing.T) {
	a := StarPoints(0, 0, 10, 0.5, 0.3, 5)
	b := StarPoints(0, 0, 10, 0.5, 0.3+2*math.Pi, 5)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if math.Abs(a[i].X-b[i].X) > 1e-9 || math.Abs(a[i].Y-b[i].Y) > 1e-9 {
			t.Errorf("vertex %d: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestStarPointsDegenerate(t *testing.T) {
	if pts := StarPoints(0, 0, 10, 0.5, 0, 1); len(pts) != 0 {
		t.Errorf("expected no vertices for a 1-point star, got %d", len(pts))
	}
}

func TestAppendStarPointsReusesBuffer(t *testing.T) {
	buf := make([]Point, 0, 16)
	out := AppendStarPoints(buf, 0, 0, 10, 0.5, 0, 4)
	if len(out) != 8 || &out[0] != &buf[:1][0] {
		t.Errorf("expected 8 vertices appended in place, got len %d", len(out))
	}
}
