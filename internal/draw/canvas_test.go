package draw

import (
	"bytes"
	"strings"
	"testing"
)

var red = Color{R: 255, A: 255}

func TestCanvasFillEllipseSetsCenter(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillEllipse(Point{X: 50, Y: 50}, 0.1, red)
	if _, ok := c.Pixel(5, 5); !ok {
		t.Error("tiny circle did not set its center pixel")
	}
}

func TestCanvasRenderSkipsUnchangedCells(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetFloat(1, 1, red)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(first.String(), "38;2;255;0;0") {
		t.Errorf("first render lacks the pixel colour: %q", first.String())
	}

	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatal(err)
	}
	if second.Len() != 0 {
		t.Errorf("unchanged frame wrote %d bytes", second.Len())
	}

	c.ForceRedraw()
	var third bytes.Buffer
	if err := c.Render(&third); err != nil {
		t.Fatal(err)
	}
	if third.Len() <= first.Len()/2 {
		t.Errorf("forced redraw wrote only %d bytes", third.Len())
	}
}

func TestCanvasPolygonFill(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawPolygon([]Point{{2, 2}, {12, 2}, {12, 12}, {2, 12}}, red, true)
	if _, ok := c.Pixel(7, 7); !ok {
		t.Error("interior pixel of a filled square is unset")
	}
	if _, ok := c.Pixel(15, 15); ok {
		t.Error("pixel outside the square is set")
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := ClampTermSize(200, 80)
	if w != MaxTermWidth || h != MaxTermHeight {
		t.Errorf("render size = %dx%d", w, h)
	}
	if col != 10 || row != 10 {
		t.Errorf("offset = (%d, %d), want (10, 10)", col, row)
	}
}

func TestTerminalRendererWritesLabels(t *testing.T) {
	var out bytes.Buffer
	size := func() (int, int, error) { return 80, 24, nil }
	r := NewTerminalRenderer(&out, size, 900, 640)
	r.BeginFrame(Color{A: 255})
	r.FillCircle(Point{X: 450, Y: 320}, 20, red)
	r.Text(Point{X: 12, Y: 12}, "Score: 0", Color{R: 255, G: 255, B: 255, A: 255}, TextNormal, AlignLeft)
	if err := r.Present(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Score: 0") {
		t.Error("label missing from terminal output")
	}
}

func TestRecorderKeepsLastFrame(t *testing.T) {
	var r Recorder
	r.BeginFrame(Color{})
	r.FillRect(Rect{W: 1, H: 1}, red)
	r.Text(Point{}, "a", red, TextNormal, AlignLeft)
	if len(r.Calls()) != 0 {
		t.Fatal("calls visible before Present")
	}
	_ = r.Present()
	if r.Count(OpFillRect) != 1 || len(r.Texts()) != 1 || r.Frames != 1 {
		t.Errorf("unexpected recording: %+v", r.Calls())
	}
}
