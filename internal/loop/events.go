package loop

import (
	"github.com/charmbracelet/log"
)

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventFire      EventKind = iota // A laser left the muzzle
	EventSpawn                      // A star entered from the top
	EventHit                        // A laser destroyed a star
	EventMiss                       // A star crossed the bottom boundary
	EventCannonHit                  // A hostile bullet struck the cannon
	EventGameOver                   // Lives reached zero
)

func (k EventKind) String() string {
	switch k {
	case EventFire:
		return "fire"
	case EventSpawn:
		return "spawn"
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventCannonHit:
		return "cannon_hit"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Event is published after the frame that produced it. X and Y are the
// field position where it happened; Score and Lives are the cannon's
// counters at that moment.
type Event struct {
	Kind  EventKind
	Frame int64
	X, Y  float64
	Score int
	Lives int
}

// EventSink consumes session events. Sinks must not block and never see the
// session itself.
type EventSink interface {
	HandleEvent(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// HandleEvent calls f(e).
func (f EventSinkFunc) HandleEvent(e Event) {
	f(e)
}

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// HandleEvent forwards e to every non-nil sink.
func (m MultiSink) HandleEvent(e Event) {
	for _, s := range m {
		if s != nil {
			s.HandleEvent(e)
		}
	}
}

// LogSink writes events to a structured logger. Fire and spawn events are
// logged at debug level only.
type LogSink struct {
	Logger *log.Logger
}

// HandleEvent logs e.
func (l LogSink) HandleEvent(e Event) {
	if l.Logger == nil {
		return
	}
	switch e.Kind {
	case EventFire, EventSpawn:
		l.Logger.Debug(e.Kind.String(), "frame", e.Frame, "x", e.X, "y", e.Y)
	case EventHit:
		l.Logger.Debug("hit", "frame", e.Frame, "score", e.Score)
	case EventMiss, EventCannonHit:
		l.Logger.Info(e.Kind.String(), "frame", e.Frame, "lives", e.Lives)
	case EventGameOver:
		l.Logger.Info("game over", "frame", e.Frame, "score", e.Score)
	}
}

// emit records an event for the current frame.
func (s *Session) emit(e Event) {
	e.Frame = s.frame
	e.Score = s.Cannon.Score
	e.Lives = s.Cannon.Lives
	s.events = append(s.events, e)
}
