// Package tcellui runs sessions on a tcell screen: a half-block Drawer and
// a keyboard Input fed by tcell key events.
package tcellui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/starfall/internal/draw"
)

type label struct {
	at    draw.Point
	text  string
	color draw.Color
	bold  bool
	align draw.Align
}

// Screen implements draw.Drawer on a tcell.Screen. Shapes are rasterized on
// a draw.Canvas and copied into screen cells as half blocks.
type Screen struct {
	screen tcell.Screen
	canvas *draw.Canvas
	labels []label
	mono   bool
}

// NewScreen wraps an initialized tcell screen for a field of the given logical size.
func NewScreen(s tcell.Screen, fieldWidth, fieldHeight float64) *Screen {
	w, h := s.Size()
	rw, rh, offCol, offRow := draw.ClampTermSize(w, h)
	canvas := draw.NewScaledCanvas(rw, rh, fieldWidth, fieldHeight)
	canvas.SetOffset(offCol, offRow)
	return &Screen{
		screen: s,
		canvas: canvas,
		mono:   s.Colors() < 256,
	}
}

// SetMono forces shade-character output instead of colours.
func (s *Screen) SetMono(mono bool) {
	s.mono = mono
}

// Canvas exposes the underlying canvas.
func (s *Screen) Canvas() *draw.Canvas {
	return s.canvas
}

// BeginFrame follows screen resizes and clears the canvas.
func (s *Screen) BeginFrame(background draw.Color) {
	w, h := s.screen.Size()
	rw, rh, offCol, offRow := draw.ClampTermSize(w, h)
	if rw != s.canvas.TerminalWidth() || rh != s.canvas.TerminalHeight() {
		s.screen.Clear()
	}
	s.canvas.Resize(rw, rh)
	s.canvas.SetOffset(offCol, offRow)

	s.labels = s.labels[:0]
	if background.A != 0 && (background.R|background.G|background.B) != 0 {
		s.canvas.Fill(background)
	} else {
		s.canvas.Clear()
	}
}

func (s *Screen) FillRect(r draw.Rect, c draw.Color) {
	s.canvas.DrawPolygon(s.rect(r), c, true)
}

func (s *Screen) StrokeRect(r draw.Rect, c draw.Color, _ float64) {
	s.canvas.DrawPolygon(s.rect(r), c, false)
}

func (s *Screen) FillCircle(center draw.Point, radius float64, c draw.Color) {
	s.canvas.FillEllipse(center, radius, c)
}

func (s *Screen) StrokeCircle(center draw.Point, radius float64, c draw.Color, _ float64) {
	s.canvas.StrokeEllipse(center, radius, c)
}

func (s *Screen) FillPolygon(points []draw.Point, c draw.Color) {
	s.canvas.DrawPolygon(points, c, true)
}

func (s *Screen) Polyline(points []draw.Point, c draw.Color, _ float64, _ bool) {
	for i := 0; i+1 < len(points); i++ {
		s.canvas.DrawLine(points[i], points[i+1], c)
	}
}

func (s *Screen) Text(at draw.Point, text string, c draw.Color, size draw.TextSize, align draw.Align) {
	s.labels = append(s.labels, label{at: at, text: text, color: c, bold: size == draw.TextLarge, align: align})
}

// Present copies the canvas and labels to the screen and shows it.
func (s *Screen) Present() error {
	offCol, offRow := s.canvas.OffsetCol(), s.canvas.OffsetRow()
	for row := 0; row < s.canvas.TerminalHeight(); row++ {
		for col := 0; col < s.canvas.TerminalWidth(); col++ {
			top, hasTop := s.canvas.Pixel(col, row*2)
			bottom, hasBottom := s.canvas.Pixel(col, row*2+1)
			r, style := s.cell(top, hasTop, bottom, hasBottom)
			s.screen.SetContent(col+offCol, row+offRow, r, nil, style)
		}
	}

	for _, l := range s.labels {
		col, row := s.canvas.LogicalToTerminal(l.at.X, l.at.Y)
		col--
		row--
		n := utf8.RuneCountInString(l.text)
		switch l.align {
		case draw.AlignCenter:
			col -= n / 2
		case draw.AlignRight:
			col -= n - 1
		}
		if col < 0 {
			col = 0
		}
		style := tcell.StyleDefault.Foreground(color(l.color)).Bold(l.bold)
		for _, r := range l.text {
			s.screen.SetContent(col+offCol, row+offRow, r, nil, style)
			col++
		}
	}

	s.screen.Show()
	return nil
}

func (s *Screen) cell(top draw.Color, hasTop bool, bottom draw.Color, hasBottom bool) (rune, tcell.Style) {
	style := tcell.StyleDefault
	if s.mono {
		var lum float64
		if hasTop {
			lum += luminance(top) / 2
		}
		if hasBottom {
			lum += luminance(bottom) / 2
		}
		return draw.ShadeLevel(lum), style
	}

	switch {
	case hasTop && hasBottom && top == bottom:
		return draw.BlockFull, style.Foreground(color(top))
	case hasTop && hasBottom:
		return draw.BlockUpperHalf, style.Foreground(color(top)).Background(color(bottom))
	case hasTop:
		return draw.BlockUpperHalf, style.Foreground(color(top))
	case hasBottom:
		return draw.BlockLowerHalf, style.Foreground(color(bottom))
	default:
		return draw.BlockEmpty, style
	}
}

func (s *Screen) rect(r draw.Rect) []draw.Point {
	pts := s.canvas.BorrowPoints(4)
	pts[0] = draw.Point{X: r.X, Y: r.Y}
	pts[1] = draw.Point{X: r.X + r.W, Y: r.Y}
	pts[2] = draw.Point{X: r.X + r.W, Y: r.Y + r.H}
	pts[3] = draw.Point{X: r.X, Y: r.Y + r.H}
	return pts
}

func color(c draw.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// luminance is the perceived brightness of c in [0, 1].
func luminance(c draw.Color) float64 {
	return float64(2126*int(c.R)+7152*int(c.G)+722*int(c.B)) / (10000 * 255)
}

var _ draw.Drawer = (*Screen)(nil)
