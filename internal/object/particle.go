package object

import (
	"math"

	"github.com/tomz197/starfall/internal/draw"
)

// Burst is the colour and motion profile of a particle burst.
type Burst struct {
	Primary      draw.Color
	Accent       draw.Color
	AccentChance float64 // Probability a particle takes the accent colour
	JitterX      float64 // Spawn positions are spread by ±JitterX around the origin
	JitterY      float64
	Speed        float64 // Each velocity component is drawn from [-Speed, Speed]
	Gravity      float64 // Added to the vertical velocity every tick
	Drag         float64 // Horizontal velocity multiplier per tick (1 = none)
	MinSize      int
	MaxSize      int
}

// LifeRange is the closed range of particle lifetimes, in ticks.
type LifeRange struct {
	Min, Max int
}

// Particle is a short-lived spark. It shrinks as it ages and expires when its
// age reaches its lifetime.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Age     int
	Life    int
	Size    int
	Color   draw.Color
	gravity float64
	drag    float64
}

// Update advances the particle by one tick.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.VY += p.gravity
	p.VX *= p.drag
	p.Age++
}

// Alive reports whether the particle has lifetime left.
func (p *Particle) Alive() bool {
	return p.Age < p.Life
}

// Radius returns the current draw radius. It never grows with age and never
// drops below 1.
func (p *Particle) Radius() float64 {
	prog := 1 - float64(p.Age)/float64(p.Life)
	return math.Max(1, math.Floor(float64(p.Size)*prog))
}

// Draw renders the particle.
func (p *Particle) Draw(d draw.Drawer) {
	d.FillCircle(draw.Point{X: p.X, Y: p.Y}, p.Radius(), p.Color)
}

// ParticleSystem owns every live particle of a session. It never holds more
// than its cap; particles emitted past the cap are dropped.
type ParticleSystem struct {
	items []Particle
	limit int
}

// NewParticleSystem creates a system holding at most limit particles.
func NewParticleSystem(limit int) *ParticleSystem {
	if limit < 0 {
		limit = 0
	}
	return &ParticleSystem{items: make([]Particle, 0, limit), limit: limit}
}

// Emit adds up to count particles around (x, y) and returns how many were added.
func (s *ParticleSystem) Emit(x, y float64, b Burst, count int, life LifeRange, rng *Rand) int {
	added := 0
	for i := 0; i < count && len(s.items) < s.limit; i++ {
		c := b.Primary
		if b.AccentChance > 0 && rng.Chance(b.AccentChance) {
			c = b.Accent
		}
		lt := rng.IntRange(life.Min, life.Max)
		if lt < 1 {
			lt = 1
		}
		drag := b.Drag
		if drag == 0 {
			drag = 1
		}
		s.items = append(s.items, Particle{
			X:       x + rng.Uniform(-b.JitterX, b.JitterX),
			Y:       y + rng.Uniform(-b.JitterY, b.JitterY),
			VX:      rng.Uniform(-b.Speed, b.Speed),
			VY:      rng.Uniform(-b.Speed, b.Speed),
			Life:    lt,
			Size:    rng.IntRange(b.MinSize, b.MaxSize),
			Color:   c,
			gravity: b.Gravity,
			drag:    drag,
		})
		added++
	}
	return added
}

// Update advances every particle by one tick.
func (s *ParticleSystem) Update() {
	for i := range s.items {
		s.items[i].Update()
	}
}

// Cull drops expired particles in place and returns how many were removed.
func (s *ParticleSystem) Cull() int {
	kept := s.items[:0]
	for _, p := range s.items {
		if p.Alive() {
			kept = append(kept, p)
		}
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// Len returns the number of live particles.
func (s *ParticleSystem) Len() int {
	return len(s.items)
}

// Cap returns the particle cap.
func (s *ParticleSystem) Cap() int {
	return s.limit
}

// Particles returns the live particles. The slice is only valid until the next Emit or Cull.
func (s *ParticleSystem) Particles() []Particle {
	return s.items
}

// Draw renders every live particle.
func (s *ParticleSystem) Draw(d draw.Drawer) {
	for i := range s.items {
		s.items[i].Draw(d)
	}
}
