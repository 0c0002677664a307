// Package sound plays short synthesized effects for session events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/starfall/internal/loop"
)

// DefaultSampleRate is the output rate used by cmd binaries.
const DefaultSampleRate = beep.SampleRate(44100)

// Per-effect loudness relative to the master volume.
var effectVolume = map[loop.EventKind]float64{
	loop.EventFire:      0.12,
	loop.EventHit:       0.45,
	loop.EventMiss:      0.35,
	loop.EventCannonHit: 0.5,
	loop.EventGameOver:  0.35,
}

// Player turns session events into sound effects. It implements
// loop.EventSink and never blocks the caller.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	master      float64
	mixer       *beep.Mixer
	initialized bool
	seed        uint32
}

// NewPlayer creates a player. master scales every effect (1 = full).
func NewPlayer(rate beep.SampleRate, master float64) *Player {
	return &Player{
		rate:   rate,
		master: master,
		mixer:  &beep.Mixer{},
		seed:   uint32(time.Now().UnixNano()),
	}
}

// Init opens the audio device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.mixer.Clear()
	p.initialized = false
}

// HandleEvent implements loop.EventSink.
func (p *Player) HandleEvent(e loop.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.streamer(e.Kind)
	if s == nil {
		return
	}
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// Active returns how many effects are still playing.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

func (p *Player) streamer(kind loop.EventKind) beep.Streamer {
	vol, ok := effectVolume[kind]
	if !ok {
		return nil
	}
	p.seed = p.seed*1664525 + 1013904223

	var s beep.Streamer
	switch kind {
	case loop.EventFire:
		s = fireSound(p.rate)
	case loop.EventHit:
		s = hitSound(p.rate, p.seed)
	case loop.EventMiss:
		s = missSound(p.rate)
	case loop.EventCannonHit:
		s = cannonHitSound(p.rate, p.seed)
	case loop.EventGameOver:
		s = gameOverSound(p.rate)
	default:
		return nil
	}
	return newVolume(s, vol*p.master)
}

var _ loop.EventSink = (*Player)(nil)
