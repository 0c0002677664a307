package loop

import (
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
)

// StepReport summarizes one simulated frame.
type StepReport struct {
	Frame      int64
	Fired      bool
	Spawned    bool
	Hits       int
	Misses     int
	CannonHits int
	Quit       bool // Quit was requested; nothing was simulated
	GameOver   bool // Lives reached zero this frame (or earlier)

	// Events produced by the frame. Only valid until the next Step.
	Events []Event
}

// Step simulates one frame at simulation time nowMs:
// input, cannon, laser spawn, star spawn, advance, hits, misses, cull.
// Rendering is separate (Render). Once the session is over Step does nothing.
func (s *Session) Step(nowMs int64, in input.State) StepReport {
	s.events = s.events[:0]
	if s.over {
		return StepReport{Frame: s.frame, GameOver: true}
	}
	if in.Quit {
		return StepReport{Frame: s.frame, Quit: true}
	}
	s.frame++

	rep := StepReport{Frame: s.frame}

	s.Cannon.Update(in, s.field)

	rep.Fired = s.TrySpawnProjectile(nowMs, s.tuning.LaserCooldownMs)
	rep.Spawned = s.TrySpawnTarget(nowMs, s.tuning.SpawnIntervalMs)

	s.advance()

	rep.Hits = s.resolveHits()
	rep.CannonHits = s.resolveCannonHits()
	rep.Misses = s.resolveMisses()

	s.cull()

	if s.over {
		s.emit(Event{Kind: EventGameOver, X: s.Cannon.X, Y: s.Cannon.Y})
	}
	rep.GameOver = s.over
	rep.Events = s.events
	return rep
}

// advance moves every entity by one tick.
func (s *Session) advance() {
	for i := range s.projectiles {
		s.projectiles[i].Update()
	}
	for _, t := range s.targets.Active() {
		t.Update(s.field)
	}
	if s.tuning.StarBullets {
		s.fireStarBullets()
	}
	for i := range s.bullets {
		s.bullets[i].Update()
	}
	s.particles.Update()
}

// cull drops destroyed or offscreen projectiles, releases destroyed targets
// back to the arena and drops expired particles.
func (s *Session) cull() {
	s.projectiles = cullProjectiles(s.projectiles, s.field)
	s.bullets = cullProjectiles(s.bullets, s.field)
	s.targets.Sweep()
	s.particles.Cull()
}

func cullProjectiles(ps []object.Projectile, field object.Field) []object.Projectile {
	kept := ps[:0]
	for i := range ps {
		if ps[i].IsDestroyed() || ps[i].Offscreen(field) {
			continue
		}
		kept = append(kept, ps[i])
	}
	return kept
}
