package ebitenui

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/loop/config"
)

type keyboard map[ebiten.Key]bool

func (k keyboard) pressed(key ebiten.Key) bool { return k[key] }

func newTestGame(t *testing.T, keys keyboard) *Game {
	t.Helper()
	g, err := NewGame(Options{Tuning: config.Classic(), Seed: 1, Keys: keys.pressed})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestLayoutIsFieldSize(t *testing.T) {
	g := newTestGame(t, keyboard{})
	w, h := g.Layout(1920, 1080)
	if w != 900 || h != 640 {
		t.Fatalf("Layout = %dx%d, want 900x640", w, h)
	}
}

func TestNewGameKeepsUnnamedTuning(t *testing.T) {
	tun := config.Classic()
	tun.Name = ""
	tun.Field.Width = 320
	tun.Field.Height = 240
	g, err := NewGame(Options{Tuning: tun, Seed: 1, Keys: keyboard{}.pressed})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if w, h := g.Layout(1920, 1080); w != 320 || h != 240 {
		t.Fatalf("Layout = %dx%d, want 320x240", w, h)
	}
}

func TestUpdateMovesCannon(t *testing.T) {
	keys := keyboard{ebiten.KeyArrowLeft: true}
	g := newTestGame(t, keys)
	x := g.Session().Cannon.X
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.Session().Cannon.X >= x {
		t.Fatalf("cannon x = %v, want < %v", g.Session().Cannon.X, x)
	}
}

func TestUpdateQuitTerminates(t *testing.T) {
	g := newTestGame(t, keyboard{ebiten.KeyQ: true})
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update = %v, want Termination", err)
	}
	res, over := g.Result()
	if !over || res.Reason != loop.EndQuit {
		t.Fatalf("Result = %+v, %v", res, over)
	}
}

func TestGameOverWaitsForFreshKeyPress(t *testing.T) {
	keys := keyboard{ebiten.KeySpace: true}
	g := newTestGame(t, keys)
	for i := 0; i < 3; i++ {
		if g.Session().AddTarget(100, 5000, 0, 1, 10) == nil {
			t.Fatal("AddTarget failed")
		}
	}
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	res, over := g.Result()
	if !over || res.Reason != loop.EndGameOver || res.Lives != 0 {
		t.Fatalf("Result = %+v, %v", res, over)
	}

	// Space was already held when the game ended.
	if err := g.Update(); err != nil {
		t.Fatalf("held key dismissed game over: %v", err)
	}
	delete(keys, ebiten.KeySpace)
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	keys[ebiten.KeyEnter] = true
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update = %v, want Termination", err)
	}
}

func TestUpdateForwardsEvents(t *testing.T) {
	var kinds []loop.EventKind
	g, err := NewGame(Options{
		Seed: 3,
		Keys: keyboard{}.pressed,
		Events: loop.EventSinkFunc(func(e loop.Event) {
			kinds = append(kinds, e.Kind)
		}),
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i := 0; i < 60; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if len(kinds) == 0 || kinds[0] != loop.EventFire {
		t.Fatalf("events = %v, want a fire first", kinds)
	}
}

func TestTextOrigin(t *testing.T) {
	tests := []struct {
		name  string
		align draw.Align
		scale float64
		wantX float64
		wantY float64
	}{
		{"left", draw.AlignLeft, 1, 100, 42},
		{"center", draw.AlignCenter, 1, 88, 42},
		{"right", draw.AlignRight, 1, 76, 42},
		{"large center", draw.AlignCenter, 2, 76, 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := textOrigin(draw.Point{X: 100, Y: 50}, 4, tt.scale, tt.align)
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("textOrigin = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTintPremultiplies(t *testing.T) {
	vs := make([]ebiten.Vertex, 2)
	tint(vs, draw.Color{R: 255, G: 0, B: 255, A: 51})
	for _, v := range vs {
		if v.ColorA != 0.2 || v.ColorR != 0.2 || v.ColorG != 0 || v.SrcX != 1 {
			t.Fatalf("vertex = %+v", v)
		}
	}
}
