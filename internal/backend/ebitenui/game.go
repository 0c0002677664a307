// Package ebitenui runs a session in a desktop window. Ebiten owns the frame
// pacing: every Update is one simulated frame at a fixed tick rate.
package ebitenui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// KeyFunc reports whether a key is held.
type KeyFunc func(ebiten.Key) bool

// Options configures a Game.
type Options struct {
	Tuning config.Tuning // A zero Field means config.Classic()
	Seed   uint64
	Events loop.EventSink // Optional
	Logger *log.Logger
	Keys   KeyFunc // Defaults to ebiten.IsKeyPressed
}

// Game implements ebiten.Game.
type Game struct {
	session *loop.Session
	field   object.Field
	canvas  Canvas
	events  loop.EventSink
	logger  *log.Logger
	keys    KeyFunc
	tick    int64
	over    bool
	result  loop.Result

	// Confirm/quit must be released after the game ends before they
	// dismiss the game-over screen.
	armed bool
}

// NewGame creates a game from opts.
func NewGame(opts Options) (*Game, error) {
	if opts.Tuning.Field == (object.Field{}) {
		opts.Tuning = config.Classic()
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning: %w", err)
	}
	if opts.Keys == nil {
		opts.Keys = ebiten.IsKeyPressed
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := loop.NewSession(opts.Tuning, object.NewRand(opts.Seed), 0)
	opts.Logger.Info("session started", "preset", opts.Tuning.Name, "seed", opts.Seed)
	return &Game{
		session: s,
		field:   s.Field(),
		events:  opts.Events,
		logger:  opts.Logger,
		keys:    opts.Keys,
	}, nil
}

// Session exposes the running session.
func (g *Game) Session() *loop.Session {
	return g.session
}

// Result returns the outcome once the game is over.
func (g *Game) Result() (loop.Result, bool) {
	return g.result, g.over
}

// nowMs is the simulation time of the current tick.
func (g *Game) nowMs() int64 {
	return g.tick * 1000 / config.TargetFPS
}

// Update advances one frame. It returns ebiten.Termination when the player
// quits, or dismisses the game-over screen.
func (g *Game) Update() error {
	in := g.sample()

	if g.over {
		if !in.Quit && !in.Confirm {
			g.armed = true
			return nil
		}
		if g.armed {
			return ebiten.Termination
		}
		return nil
	}

	g.tick++
	rep := g.session.Step(g.nowMs(), in)
	if g.events != nil {
		for _, e := range rep.Events {
			g.events.HandleEvent(e)
		}
	}
	if rep.Quit {
		g.finish(loop.EndQuit)
		return ebiten.Termination
	}
	if err := g.session.CheckInvariants(); err != nil {
		g.logger.Error("invariant broken", "frame", rep.Frame, "err", err)
		return fmt.Errorf("frame %d: %w", rep.Frame, err)
	}
	if rep.GameOver {
		g.finish(loop.EndGameOver)
	}
	return nil
}

func (g *Game) finish(reason loop.EndReason) {
	g.over = true
	g.result = loop.Result{
		Score:  g.session.Cannon.Score,
		Lives:  g.session.Cannon.Lives,
		Frames: g.session.Frame(),
		Reason: reason,
	}
	g.logger.Info("session ended", "reason", reason, "score", g.result.Score, "frames", g.result.Frames)
}

// Draw renders the session, or the game-over screen once it ended.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	var err error
	if g.over {
		err = loop.RenderGameOver(&g.canvas, g.field, g.result.Score)
	} else {
		err = g.session.Render(&g.canvas)
	}
	if err != nil {
		g.logger.Error("draw failed", "err", err)
	}
}

// Layout keeps the logical screen at the field size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.field.Width), int(g.field.Height)
}

func (g *Game) sample() input.State {
	return input.State{
		Left:    g.keys(ebiten.KeyArrowLeft) || g.keys(ebiten.KeyA) || g.keys(ebiten.KeyH),
		Right:   g.keys(ebiten.KeyArrowRight) || g.keys(ebiten.KeyD) || g.keys(ebiten.KeyL),
		Quit:    g.keys(ebiten.KeyEscape) || g.keys(ebiten.KeyQ),
		Confirm: g.keys(ebiten.KeySpace) || g.keys(ebiten.KeyEnter),
	}
}

// Run opens a window and plays until the player quits.
func Run(title string, g *Game) error {
	ebiten.SetWindowSize(int(g.field.Width), int(g.field.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)
	return ebiten.RunGame(g)
}

var _ ebiten.Game = (*Game)(nil)
