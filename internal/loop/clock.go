package loop

import (
	"context"
	"time"
)

// Clock is the simulation's monotonic millisecond clock.
type Clock interface {
	NowMs() int64
}

// Pacer caps the loop to a frame rate. Wait blocks until the next frame is
// due and reports how long the previous frame took, or returns the context
// error if ctx ends first.
type Pacer interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// SystemClock measures milliseconds since it was created, using the
// monotonic clock reading of time.Time.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// NowMs implements Clock.
func (c *SystemClock) NowMs() int64 {
	return time.Since(c.start).Milliseconds()
}

// FramePacer sleeps away whatever is left of each frame.
type FramePacer struct {
	frame time.Duration
	last  time.Time
}

// NewFramePacer creates a pacer for the given frame duration.
func NewFramePacer(frame time.Duration) *FramePacer {
	return &FramePacer{frame: frame, last: time.Now()}
}

// Wait implements Pacer.
func (p *FramePacer) Wait(ctx context.Context) (time.Duration, error) {
	elapsed := time.Since(p.last)
	if elapsed < p.frame {
		timer := time.NewTimer(p.frame - elapsed)
		select {
		case <-ctx.Done():
			timer.Stop()
			return elapsed, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return elapsed, err
	}
	p.last = time.Now()
	return elapsed, nil
}

// StepClock is a manual clock that advances by a fixed step every Wait.
// It drives deterministic runs (tests, replays) where the simulation clock
// must not depend on wall time. It implements both Clock and Pacer.
type StepClock struct {
	Now  int64
	Step int64
}

// NowMs implements Clock.
func (c *StepClock) NowMs() int64 {
	return c.Now
}

// Wait implements Pacer without sleeping.
func (c *StepClock) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.Now += c.Step
	return time.Duration(c.Step) * time.Millisecond, nil
}
