package loop

import "github.com/tomz197/starfall/internal/object"

// TrySpawnProjectile fires a laser from the cannon's muzzle when at least
// cooldownMs of simulation time has passed since the previous laser and the
// projectile cap has room. The timer only restarts on a successful spawn.
func (s *Session) TrySpawnProjectile(nowMs, cooldownMs int64) bool {
	if nowMs-s.lastShotMs < cooldownMs {
		return false
	}
	x, y := s.Cannon.Muzzle()
	if !s.AddProjectile(x, y) {
		return false
	}
	s.lastShotMs = nowMs
	s.emit(Event{Kind: EventFire, X: x, Y: y})
	return true
}

// TrySpawnTarget activates a target from the arena when at least intervalMs
// of simulation time has passed since the previous spawn and the target cap
// has room. The new target starts at a random x within the spawn margins,
// above the visible field. The timer only restarts on a successful spawn.
func (s *Session) TrySpawnTarget(nowMs, intervalMs int64) bool {
	if nowMs-s.lastSpawnMs < intervalMs {
		return false
	}
	t, ok := s.targets.Activate(s.field, s.rng)
	if !ok {
		return false
	}
	s.lastSpawnMs = nowMs
	s.emit(Event{Kind: EventSpawn, X: t.X, Y: t.Y})
	return true
}

// fireStarBullets gives every live target its per-tick chance to shoot.
func (s *Session) fireStarBullets() {
	for _, t := range s.targets.Active() {
		if len(s.bullets) >= s.tuning.MaxBullets {
			return
		}
		if !s.rng.Chance(s.tuning.BulletChance) {
			continue
		}
		x, y := t.BulletOrigin()
		s.bullets = append(s.bullets, object.NewStarBullet(x, y, s.tuning.Bullet))
	}
}
