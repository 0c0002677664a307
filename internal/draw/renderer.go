package draw

import (
	"io"
	"unicode/utf8"
)

// Max render resolution in terminal cells. Larger terminals get a centered
// play area instead of ever-growing output per frame.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 60
)

type label struct {
	at    Point
	text  string
	color Color
	size  TextSize
	align Align
}

// TerminalRenderer implements Drawer on a half-block Canvas and writes ANSI
// output to a terminal (local or over SSH).
type TerminalRenderer struct {
	canvas   *Canvas
	cw       *ChunkWriter
	w        io.Writer
	sizeFunc TermSizeFunc
	labels   []label
	cleared  bool
}

// NewTerminalRenderer creates a renderer for a field of the given logical size.
// sizeFunc is polled at the start of every frame to follow terminal resizes.
func NewTerminalRenderer(w io.Writer, sizeFunc TermSizeFunc, fieldWidth, fieldHeight float64) *TerminalRenderer {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	rw, rh, offCol, offRow := ClampTermSize(termWidth, termHeight)
	canvas := NewScaledCanvas(rw, rh, fieldWidth, fieldHeight)
	canvas.SetOffset(offCol, offRow)
	return &TerminalRenderer{
		canvas:   canvas,
		cw:       NewChunkWriter(w, offCol, offRow),
		w:        w,
		sizeFunc: sizeFunc,
	}
}

// ClampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > MaxTermWidth {
		renderWidth = MaxTermWidth
	}
	if renderHeight > MaxTermHeight {
		renderHeight = MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// Canvas exposes the underlying canvas.
func (r *TerminalRenderer) Canvas() *Canvas {
	return r.canvas
}

// Open hides the cursor and clears the screen.
func (r *TerminalRenderer) Open() {
	EnterAltScreen(r.w)
	HideCursor(r.w)
	ClearScreen(r.w)
}

// Close restores the cursor and leaves the alternate screen.
func (r *TerminalRenderer) Close() {
	ClearScreen(r.w)
	ShowCursor(r.w)
	ExitAltScreen(r.w)
}

// BeginFrame follows terminal resizes and clears the canvas.
func (r *TerminalRenderer) BeginFrame(background Color) {
	if termWidth, termHeight, err := r.sizeFunc(); err == nil {
		rw, rh, offCol, offRow := ClampTermSize(termWidth, termHeight)
		if rw != r.canvas.TerminalWidth() || rh != r.canvas.TerminalHeight() ||
			offCol != r.canvas.OffsetCol() || offRow != r.canvas.OffsetRow() {
			r.cleared = false
		}
		r.canvas.Resize(rw, rh)
		r.canvas.SetOffset(offCol, offRow)
		r.cw.SetOffset(offCol, offRow)
	}
	if !r.cleared {
		r.cw.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
		r.cleared = true
	}

	r.labels = r.labels[:0]
	if background.A != 0 && (background.R|background.G|background.B) != 0 {
		r.canvas.Fill(background)
	} else {
		r.canvas.Clear()
	}
}

// FillRect fills r on the canvas.
func (r *TerminalRenderer) FillRect(rect Rect, c Color) {
	pts := r.canvas.BorrowPoints(4)
	rectPoints(pts, rect)
	r.canvas.DrawPolygon(pts, c, true)
}

// StrokeRect outlines r on the canvas. Terminal pixels are coarse, so width is ignored.
func (r *TerminalRenderer) StrokeRect(rect Rect, c Color, _ float64) {
	pts := r.canvas.BorrowPoints(4)
	rectPoints(pts, rect)
	r.canvas.DrawPolygon(pts, c, false)
}

// FillCircle fills a circle.
func (r *TerminalRenderer) FillCircle(center Point, radius float64, c Color) {
	r.canvas.FillEllipse(center, radius, c)
}

// StrokeCircle outlines a circle.
func (r *TerminalRenderer) StrokeCircle(center Point, radius float64, c Color, _ float64) {
	r.canvas.StrokeEllipse(center, radius, c)
}

// FillPolygon fills a polygon.
func (r *TerminalRenderer) FillPolygon(points []Point, c Color) {
	r.canvas.DrawPolygon(points, c, true)
}

// Polyline draws connected segments.
func (r *TerminalRenderer) Polyline(points []Point, c Color, _ float64, _ bool) {
	for i := 0; i+1 < len(points); i++ {
		r.canvas.DrawLine(points[i], points[i+1], c)
	}
}

// Text queues a label; labels are written over the canvas on Present.
func (r *TerminalRenderer) Text(at Point, s string, c Color, size TextSize, align Align) {
	r.labels = append(r.labels, label{at: at, text: s, color: c, size: size, align: align})
}

// Present renders the canvas and labels and flushes the frame.
func (r *TerminalRenderer) Present() error {
	if err := r.canvas.Render(r.cw); err != nil {
		return err
	}
	for _, l := range r.labels {
		col, row := r.canvas.LogicalToTerminal(l.at.X, l.at.Y)
		n := utf8.RuneCountInString(l.text)
		switch l.align {
		case AlignCenter:
			col -= n / 2
		case AlignRight:
			col -= n - 1
		}
		if col < 1 {
			col = 1
		}
		r.cw.WriteColoredAt(col, row, l.text, l.color, l.size == TextLarge)
		r.canvas.MarkTextDirty(col+r.canvas.OffsetCol(), row+r.canvas.OffsetRow(), n)
	}
	return r.cw.Flush()
}

func rectPoints(dst []Point, rect Rect) {
	dst[0] = Point{X: rect.X, Y: rect.Y}
	dst[1] = Point{X: rect.X + rect.W, Y: rect.Y}
	dst[2] = Point{X: rect.X + rect.W, Y: rect.Y + rect.H}
	dst[3] = Point{X: rect.X, Y: rect.Y + rect.H}
}

var _ Drawer = (*TerminalRenderer)(nil)
