// Package loop runs a session: the fixed-rate simulation loop, spawning,
// collision resolution and rendering of the HUD and screens.
package loop

//go:generate go tool mockgen -destination=./mocks/loop_mock.go -package=mocks . Input,Clock,Pacer,Presenter,EventSink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// Input samples the currently held controls without blocking.
type Input interface {
	Sample() input.State
}

// Presenter shows the final result once the cannon is out of lives.
type Presenter interface {
	GameOver(ctx context.Context, r Result) error
}

// EndReason tells why a session ended.
type EndReason int

const (
	EndGameOver  EndReason = iota // Lives reached zero
	EndQuit                       // The player asked to quit
	EndCancelled                  // The context was cancelled
	EndIdle                       // No input for longer than the idle timeout
	EndFailed                     // A frame broke a session invariant
)

func (r EndReason) String() string {
	switch r {
	case EndGameOver:
		return "game over"
	case EndQuit:
		return "quit"
	case EndCancelled:
		return "cancelled"
	case EndIdle:
		return "idle"
	case EndFailed:
		return "failed"
	}
	return "unknown"
}

// Result is what a finished session reports.
type Result struct {
	Score  int
	Lives  int
	Frames int64
	Reason EndReason
}

// Options configures Run. Input and Drawer are required; everything else
// has a default.
type Options struct {
	ID        string        // Session identifier for logs
	Tuning    config.Tuning // A zero Field means config.Classic()
	Seed      uint64
	Clock     Clock     // Defaults to a SystemClock
	Pacer     Pacer     // Defaults to a FramePacer at config.TargetFPS
	Input     Input
	Drawer    draw.Drawer
	Presenter Presenter // Optional game-over screen
	Events    EventSink // Optional
	Logger    *log.Logger

	// IdleTimeout ends the session when no control is held for this long.
	// Zero disables it.
	IdleTimeout time.Duration
}

// Run plays one session until the cannon is out of lives, the player quits,
// the session goes idle or ctx is cancelled. Only broken invariants and
// drawing failures are returned as errors; how the session ended is in
// Result.Reason.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Input == nil || opts.Drawer == nil {
		return Result{}, errors.New("loop: Input and Drawer are required")
	}
	if opts.Tuning.Field == (object.Field{}) {
		opts.Tuning = config.Classic()
	}
	if err := opts.Tuning.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid tuning: %w", err)
	}
	if opts.Clock == nil {
		opts.Clock = NewSystemClock()
	}
	if opts.Pacer == nil {
		opts.Pacer = NewFramePacer(config.TargetFrameTime)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.ID != "" {
		logger = logger.With("session", opts.ID)
	}

	rng := object.NewRand(opts.Seed)
	s := NewSession(opts.Tuning, rng, opts.Clock.NowMs())
	logger.Info("session started", "preset", opts.Tuning.Name, "seed", opts.Seed)
	return s.run(ctx, opts, logger)
}

// run drives an already built session. See Run.
func (s *Session) run(ctx context.Context, opts Options, logger *log.Logger) (Result, error) {
	res := Result{Reason: EndCancelled}
	lastActive := opts.Clock.NowMs()

	for {
		if ctx.Err() != nil {
			res.Reason = EndCancelled
			break
		}

		now := opts.Clock.NowMs()
		in := opts.Input.Sample()
		rep := s.Step(now, in)
		if opts.Events != nil {
			for _, e := range rep.Events {
				opts.Events.HandleEvent(e)
			}
		}
		if rep.Quit {
			res.Reason = EndQuit
			break
		}
		if err := s.CheckInvariants(); err != nil {
			logger.Error("invariant broken", "frame", rep.Frame, "err", err)
			return s.result(EndFailed), fmt.Errorf("frame %d: %w", rep.Frame, err)
		}
		if err := s.Render(opts.Drawer); err != nil {
			return s.result(EndCancelled), fmt.Errorf("render frame %d: %w", rep.Frame, err)
		}
		if rep.GameOver {
			res.Reason = EndGameOver
			break
		}

		if in.Left || in.Right || in.Confirm {
			lastActive = now
		} else if opts.IdleTimeout > 0 && now-lastActive >= opts.IdleTimeout.Milliseconds() {
			res.Reason = EndIdle
			break
		}

		if _, err := opts.Pacer.Wait(ctx); err != nil {
			res.Reason = EndCancelled
			break
		}
	}

	res = s.result(res.Reason)
	logger.Info("session ended", "reason", res.Reason, "score", res.Score, "frames", res.Frames)

	if res.Reason == EndGameOver && opts.Presenter != nil {
		if err := opts.Presenter.GameOver(ctx, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Session) result(reason EndReason) Result {
	return Result{
		Score:  s.Cannon.Score,
		Lives:  s.Cannon.Lives,
		Frames: s.frame,
		Reason: reason,
	}
}
