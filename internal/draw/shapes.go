package draw

import "math"

// StarPoints returns the vertices of a star polygon with the given number of
// points centered at (cx, cy). Vertices alternate between the outer radius and
// outer*innerRatio, starting at angle rotation and stepping π/points, so the
// result always has 2*points entries.
func StarPoints(cx, cy, outer, innerRatio, rotation float64, points int) []Point {
	return AppendStarPoints(nil, cx, cy, outer, innerRatio, rotation, points)
}

// AppendStarPoints is StarPoints appending into dst, for callers that reuse a buffer.
func AppendStarPoints(dst []Point, cx, cy, outer, innerRatio, rotation float64, points int) []Point {
	if points < 2 {
		return dst
	}
	step := math.Pi / float64(points)
	inner := outer * innerRatio
	angle := rotation
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		dst = append(dst, Point{
			X: cx + math.Cos(angle)*r,
			Y: cy + math.Sin(angle)*r,
		})
		angle += step
	}
	return dst
}

// OffsetPoints appends every point of src shifted by (dx, dy) to dst.
func OffsetPoints(dst, src []Point, dx, dy float64) []Point {
	for _, p := range src {
		dst = append(dst, Point{X: p.X + dx, Y: p.Y + dy})
	}
	return dst
}
