package loop

import (
	"errors"
	"fmt"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// ErrCapExceeded reports a collection that grew past its cap. It means the
// spawner or cull step is broken and is fatal to the session.
var ErrCapExceeded = errors.New("entity cap exceeded")

// Session is the complete state of one game: the cannon and every bounded
// entity collection. It is owned by a single goroutine; nothing in it is
// safe for concurrent use.
type Session struct {
	tuning config.Tuning
	field  object.Field
	rng    *object.Rand

	Cannon      *object.Cannon
	projectiles []object.Projectile
	bullets     []object.Projectile
	targets     *object.TargetPool
	particles   *object.ParticleSystem

	lastShotMs  int64
	lastSpawnMs int64
	frame       int64
	over        bool

	hits     []hit
	events   []Event
	backdrop []backdropDot
}

// NewSession creates a session at simulation time nowMs. Both spawn timers
// start at nowMs, so the first laser appears one cooldown later and the first
// star one spawn interval later.
func NewSession(t config.Tuning, rng *object.Rand, nowMs int64) *Session {
	s := &Session{
		tuning:      t,
		field:       t.Field,
		rng:         rng,
		Cannon:      object.NewCannon(t.Cannon, t.Field, t.Lives),
		projectiles: make([]object.Projectile, 0, t.MaxProjectiles),
		particles:   object.NewParticleSystem(t.MaxParticles),
		lastShotMs:  nowMs,
		lastSpawnMs: nowMs,
	}
	// Targets keep a pointer to the session's own copy of the spec.
	s.targets = object.NewTargetPool(&s.tuning.Target, t.MaxTargets, t.Pooled)
	if t.StarBullets {
		s.bullets = make([]object.Projectile, 0, t.MaxBullets)
	}
	s.backdrop = newBackdrop(t.Field)
	return s
}

// Tuning returns the parameters the session was built with.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// Field returns the play field.
func (s *Session) Field() object.Field {
	return s.field
}

// Frame returns the number of simulated frames.
func (s *Session) Frame() int64 {
	return s.frame
}

// Over reports whether the cannon has run out of lives.
func (s *Session) Over() bool {
	return s.over
}

// Projectiles returns the live lasers.
func (s *Session) Projectiles() []object.Projectile {
	return s.projectiles
}

// Bullets returns the live hostile bullets.
func (s *Session) Bullets() []object.Projectile {
	return s.bullets
}

// Targets returns the live targets.
func (s *Session) Targets() []*object.Target {
	return s.targets.Active()
}

// Particles returns the particle system.
func (s *Session) Particles() *object.ParticleSystem {
	return s.particles
}

// AddTarget activates a target and places it exactly. It returns nil when
// the target cap is reached. Intended for staging scenarios.
func (s *Session) AddTarget(x, y, vx, vy, radius float64) *object.Target {
	t, ok := s.targets.Activate(s.field, s.rng)
	if !ok {
		return nil
	}
	t.Place(x, y, vx, vy, radius)
	return t
}

// AddProjectile adds a laser at (x, y), ignoring the cooldown. It returns
// false when the projectile cap is reached.
func (s *Session) AddProjectile(x, y float64) bool {
	if len(s.projectiles) >= s.tuning.MaxProjectiles {
		return false
	}
	s.projectiles = append(s.projectiles, object.NewLaser(x, y, s.tuning.Laser))
	return true
}

// CheckInvariants verifies every collection is within its cap and the
// cannon's counters are in range.
func (s *Session) CheckInvariants() error {
	t := s.tuning
	if n := len(s.projectiles); n > t.MaxProjectiles {
		return fmt.Errorf("projectiles %d > %d: %w", n, t.MaxProjectiles, ErrCapExceeded)
	}
	if n := s.targets.Len(); n > t.MaxTargets {
		return fmt.Errorf("targets %d > %d: %w", n, t.MaxTargets, ErrCapExceeded)
	}
	if n := s.particles.Len(); n > t.MaxParticles {
		return fmt.Errorf("particles %d > %d: %w", n, t.MaxParticles, ErrCapExceeded)
	}
	if n := len(s.bullets); n > t.MaxBullets {
		return fmt.Errorf("bullets %d > %d: %w", n, t.MaxBullets, ErrCapExceeded)
	}
	if s.Cannon.Lives < 0 {
		return fmt.Errorf("lives went negative (%d)", s.Cannon.Lives)
	}
	return nil
}
