package ebitenui

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/starfall/internal/draw"
)

// Glyph size of the ebitenutil debug font.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func solid() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Canvas implements draw.Drawer on an ebiten image. Field units are pixels.
type Canvas struct {
	dst     *ebiten.Image
	scratch *ebiten.Image
	vs      []ebiten.Vertex
	is      []uint16
}

// Target sets the image the next frame is drawn on.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

func (c *Canvas) BeginFrame(background draw.Color) {
	c.dst.Fill(background)
}

func (c *Canvas) FillRect(r draw.Rect, col draw.Color) {
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
}

func (c *Canvas) StrokeRect(r draw.Rect, col draw.Color, width float64) {
	vector.StrokeRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), col, false)
}

func (c *Canvas) FillCircle(center draw.Point, radius float64, col draw.Color) {
	vector.DrawFilledCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), col, true)
}

func (c *Canvas) StrokeCircle(center draw.Point, radius float64, col draw.Color, width float64) {
	vector.StrokeCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), float32(width), col, true)
}

// FillPolygon fills an arbitrary simple polygon with the even-odd rule.
func (c *Canvas) FillPolygon(points []draw.Point, col draw.Color) {
	if len(points) < 3 {
		return
	}
	path := polygonPath(points)
	c.vs, c.is = path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	tint(c.vs, col)

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.EvenOdd
	c.dst.DrawTriangles(c.vs, c.is, solid(), op)
}

func (c *Canvas) Polyline(points []draw.Point, col draw.Color, width float64, antialias bool) {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		vector.StrokeLine(c.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), col, antialias)
	}
}

// Text draws s with the debug font, tinted and doubled in size for TextLarge.
func (c *Canvas) Text(at draw.Point, s string, col draw.Color, size draw.TextSize, align draw.Align) {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return
	}
	w, h := n*glyphWidth, glyphHeight
	if c.scratch == nil || c.scratch.Bounds().Dx() < w {
		c.scratch = ebiten.NewImage(max(w, 256), h)
	}
	c.scratch.Clear()
	ebitenutil.DebugPrintAt(c.scratch, s, 0, 0)

	scale := 1.0
	if size == draw.TextLarge {
		scale = 2
	}
	x, y := textOrigin(at, n, scale, align)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	c.dst.DrawImage(c.scratch.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image), op)
}

// Present is a no-op: ebiten shows the image after Draw returns.
func (c *Canvas) Present() error {
	return nil
}

// textOrigin returns the top-left pixel of a label of n glyphs anchored at
// at. The anchor is the vertical center of the line.
func textOrigin(at draw.Point, n int, scale float64, align draw.Align) (x, y float64) {
	w := float64(n*glyphWidth) * scale
	x = at.X
	switch align {
	case draw.AlignCenter:
		x -= w / 2
	case draw.AlignRight:
		x -= w
	}
	y = at.Y - float64(glyphHeight)*scale/2
	return x, y
}

func polygonPath(points []draw.Point) *vector.Path {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	return &path
}

func tint(vs []ebiten.Vertex, col draw.Color) {
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r * a
		vs[i].ColorG = g * a
		vs[i].ColorB = b * a
		vs[i].ColorA = a
	}
}

var _ draw.Drawer = (*Canvas)(nil)
