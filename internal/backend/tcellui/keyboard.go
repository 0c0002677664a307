package tcellui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/starfall/internal/input"
)

// Keyboard turns tcell key events into per-frame input.State. Terminals only
// report key presses, so a key counts as held for input.HoldDuration after
// its last press, the same as the raw byte stream.
type Keyboard struct {
	mu      sync.Mutex
	hold    time.Duration
	left    time.Time
	right   time.Time
	confirm time.Time
	quit    bool
	now     func() time.Time
}

// NewKeyboard creates a keyboard with the default hold duration.
func NewKeyboard() *Keyboard {
	return &Keyboard{hold: input.HoldDuration, now: time.Now}
}

// Listen polls s for events until the screen is finalized. Run it in its own
// goroutine. Resize events resync the screen.
func (k *Keyboard) Listen(s tcell.Screen) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			k.mu.Lock()
			k.quit = true
			k.mu.Unlock()
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			k.HandleKey(ev)
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

// HandleKey records a key press.
func (k *Keyboard) HandleKey(ev *tcell.EventKey) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	switch ev.Key() {
	case tcell.KeyLeft:
		k.left = now
	case tcell.KeyRight:
		k.right = now
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.quit = true
	case tcell.KeyEnter:
		k.confirm = now
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			k.quit = true
		case 'a', 'A', 'h', 'H':
			k.left = now
		case 'd', 'D', 'l', 'L':
			k.right = now
		case ' ':
			k.confirm = now
		}
	}
}

// Sample returns the current control state.
func (k *Keyboard) Sample() input.State {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	return input.State{
		Left:    now.Sub(k.left) < k.hold,
		Right:   now.Sub(k.right) < k.hold,
		Confirm: now.Sub(k.confirm) < k.hold,
		Quit:    k.quit,
	}
}

// Reset forgets held keys. A pending quit is kept.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.left, k.right, k.confirm = time.Time{}, time.Time{}, time.Time{}
}
