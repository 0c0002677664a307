// Package input turns raw terminal bytes into per-frame control state.
package input

import (
	"bufio"
	"io"
	"time"
)

// HoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a held arrow shows up as a stream of
// presses roughly every 30ms once auto-repeat kicks in.
const HoldDuration = 110 * time.Millisecond

// State is the control state sampled once per frame.
type State struct {
	Left    bool
	Right   bool
	Quit    bool
	Confirm bool
}

// maxPending bounds an unfinished escape sequence carried between samples.
const maxPending = 16

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch      chan byte
	state   keyState
	hold    time.Duration
	closed  bool
	pending []byte // Unfinished escape sequence from the previous sample
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	left    time.Time
	right   time.Time
	confirm time.Time
	quit    bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// Bytes that arrive while nobody samples and the buffer is full are dropped.
func StartStream(r *bufio.Reader) *Stream {
	return startStream(r, 128)
}

func startStream(r io.ByteReader, buffer int) *Stream {
	s := newStream(buffer)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			default:
			}
		}
	}()
	return s
}

func newStream(buffer int) *Stream {
	return &Stream{ch: make(chan byte, buffer), hold: HoldDuration}
}

// SetHold overrides how long a key stays held after its last press.
func (s *Stream) SetHold(d time.Duration) {
	s.hold = d
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Sample drains all available bytes without blocking and returns the current state.
func (s *Stream) Sample() State {
	return s.SampleAt(time.Now())
}

// SampleAt is Sample with an explicit timestamp.
// A closed stream (EOF, disconnected session) always reports Quit.
//
// An escape sequence split across samples is held back until the rest of it
// arrives. A lone ESC counts as a quit only once a sample brings nothing
// after it.
func (s *Stream) SampleAt(now time.Time) State {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	switch {
	case len(s.pending) > 0 && (len(buf) == 0 || s.closed):
		s.state.quit = true
		s.pending = nil
	case len(buf) > 0:
		rest := parse(&s.state, append(s.pending, buf...), now)
		if len(rest) > maxPending {
			s.state.quit = true
			rest = nil
		}
		s.pending = append(s.pending[:0], rest...)
	}

	return State{
		Left:    now.Sub(s.state.left) < s.hold,
		Right:   now.Sub(s.state.right) < s.hold,
		Confirm: now.Sub(s.state.confirm) < s.hold,
		Quit:    s.state.quit || s.closed,
	}
}

// Reset forgets held keys, e.g. when switching between screens.
func (s *Stream) Reset() {
	s.state = keyState{quit: s.state.quit}
}

// parse updates key timestamps from a batch of bytes and returns an
// unfinished escape sequence left at its end. CSI (ESC [) and SS3 (ESC O)
// sequences are consumed whole; only left and right arrows act. An ESC
// followed by anything else is a bare ESC and quits.
func parse(state *keyState, buf []byte, now time.Time) (rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(state, b, now)
			continue
		}
		if i+1 == len(buf) {
			return buf[i:]
		}

		var end int
		switch buf[i+1] {
		case '[':
			// Parameter and intermediate bytes run up to the final byte.
			end = i + 2
			for end < len(buf) && buf[end] >= 0x20 && buf[end] <= 0x3f {
				end++
			}
		case 'O':
			end = i + 2
		default:
			state.quit = true
			continue
		}
		if end >= len(buf) {
			return buf[i:]
		}

		switch buf[end] {
		case 'C': // Right arrow
			state.right = now
		case 'D': // Left arrow
			state.left = now
		}
		i = end
	}
	return nil
}

// applyByteToState updates the key state based on a single pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', '\n', '\r':
		state.confirm = now
	}
}
