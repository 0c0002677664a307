// Package draw provides the drawing capability the simulation renders through,
// plus the terminal canvas that implements it with half-block characters.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in field coordinates.
type Rect struct {
	X, Y, W, H float64
}

// RectCentered returns a w×h rectangle centered on (cx, cy).
func RectCentered(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Inset shrinks the rectangle by dx on the left and right and dy on top and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Color is an 8-bit RGBA colour. It satisfies image/color.Color so backends
// can hand it to image libraries unchanged.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// RGBA implements color.Color (alpha-premultiplied, 16 bits per channel).
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return
}

// Scale multiplies the colour channels by f (clamped to [0,1]).
func (c Color) Scale(f float64) Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Align controls horizontal text placement relative to the anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextSize selects one of the two fonts the HUD and screens use.
type TextSize int

const (
	TextNormal TextSize = iota
	TextLarge
)

// Drawer is the rendering capability the core calls into. All coordinates are
// field coordinates; backends scale them to their surface.
// A frame is BeginFrame, any number of primitives, then Present.
type Drawer interface {
	BeginFrame(background Color)
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color, width float64)
	FillCircle(center Point, radius float64, c Color)
	StrokeCircle(center Point, radius float64, c Color, width float64)
	FillPolygon(points []Point, c Color)
	// Polyline draws connected segments. antialias is a hint; backends
	// without smoothing ignore it.
	Polyline(points []Point, c Color, width float64, antialias bool)
	Text(at Point, s string, c Color, size TextSize, align Align)
	Present() error
}

// Shade characters from lightest to darkest.
// Use these to render different intensities in the terminal.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
