package draw

// Op identifies a recorded drawing primitive.
type Op int

const (
	OpFillRect Op = iota
	OpStrokeRect
	OpFillCircle
	OpStrokeCircle
	OpFillPolygon
	OpPolyline
	OpText
)

// Call is one recorded primitive.
type Call struct {
	Op     Op
	Points []Point // polygon/polyline vertices, or the circle center / text anchor
	Rect   Rect
	Radius float64
	Width  float64
	Color  Color
	Text   string
	Size   TextSize
	Align  Align
}

// Recorder is a Drawer that keeps the primitives of the last presented frame.
// It backs headless sessions and rendering tests.
type Recorder struct {
	Background Color
	Frames     int
	pending    []Call
	last       []Call
}

// BeginFrame starts a new frame.
func (r *Recorder) BeginFrame(background Color) {
	r.Background = background
	r.pending = r.pending[:0]
}

func (r *Recorder) FillRect(rect Rect, c Color) {
	r.pending = append(r.pending, Call{Op: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect Rect, c Color, width float64) {
	r.pending = append(r.pending, Call{Op: OpStrokeRect, Rect: rect, Color: c, Width: width})
}

func (r *Recorder) FillCircle(center Point, radius float64, c Color) {
	r.pending = append(r.pending, Call{Op: OpFillCircle, Points: []Point{center}, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(center Point, radius float64, c Color, width float64) {
	r.pending = append(r.pending, Call{Op: OpStrokeCircle, Points: []Point{center}, Radius: radius, Color: c, Width: width})
}

func (r *Recorder) FillPolygon(points []Point, c Color) {
	r.pending = append(r.pending, Call{Op: OpFillPolygon, Points: append([]Point(nil), points...), Color: c})
}

func (r *Recorder) Polyline(points []Point, c Color, width float64, _ bool) {
	r.pending = append(r.pending, Call{Op: OpPolyline, Points: append([]Point(nil), points...), Color: c, Width: width})
}

func (r *Recorder) Text(at Point, s string, c Color, size TextSize, align Align) {
	r.pending = append(r.pending, Call{Op: OpText, Points: []Point{at}, Text: s, Color: c, Size: size, Align: align})
}

// Present publishes the pending frame.
func (r *Recorder) Present() error {
	r.last, r.pending = r.pending, r.last[:0]
	r.Frames++
	return nil
}

// Calls returns the primitives of the last presented frame.
func (r *Recorder) Calls() []Call {
	return r.last
}

// Count returns how many primitives of kind op the last frame contained.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.last {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the strings drawn in the last frame, in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.last {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}

var _ Drawer = (*Recorder)(nil)
