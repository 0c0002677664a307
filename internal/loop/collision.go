package loop

// hit is a resolved projectile/target pair, recorded before any state changes.
type hit struct {
	x, y float64
}

// resolveHits pairs projectiles with targets whose boxes intersect. A
// projectile destroys at most one target (the first in arena order) and a
// target is destroyed by at most one projectile. All pairs are collected
// before score, effects and removal are applied.
func (s *Session) resolveHits() int {
	s.hits = s.hits[:0]
	targets := s.targets.Active()

	for i := range s.projectiles {
		p := &s.projectiles[i]
		if p.IsDestroyed() {
			continue
		}
		pr := p.Rect()
		for _, t := range targets {
			if t.IsDestroyed() {
				continue
			}
			if pr.Intersects(t.Rect()) {
				p.MarkDestroyed()
				t.MarkDestroyed()
				s.hits = append(s.hits, hit{x: t.X, y: t.Y})
				break
			}
		}
	}

	for _, h := range s.hits {
		s.Cannon.AddScore(s.tuning.ScorePerHit)
		s.burst(h.x, h.y, s.tuning.HitBurst)
		s.emit(Event{Kind: EventHit, X: h.x, Y: h.y})
	}
	return len(s.hits)
}

// resolveCannonHits removes hostile bullets that struck the cannon. Each
// costs one life.
func (s *Session) resolveCannonHits() int {
	if len(s.bullets) == 0 {
		return 0
	}
	cr := s.Cannon.Rect()
	n := 0
	for i := range s.bullets {
		b := &s.bullets[i]
		if b.IsDestroyed() || !b.Rect().Intersects(cr) {
			continue
		}
		b.MarkDestroyed()
		s.loseLife()
		s.burst(s.Cannon.X, s.Cannon.Y, s.tuning.CannonHitBurst)
		s.emit(Event{Kind: EventCannonHit, X: s.Cannon.X, Y: s.Cannon.Y})
		n++
	}
	return n
}

// resolveMisses removes targets that crossed the bottom boundary. Each costs
// one life and throws a small burst just above the cannon.
func (s *Session) resolveMisses() int {
	n := 0
	for _, t := range s.targets.Active() {
		if t.IsDestroyed() || !t.PastBottom(s.field) {
			continue
		}
		t.MarkDestroyed()
		s.loseLife()
		s.burst(s.Cannon.X, s.Cannon.Y-s.tuning.MissLift, s.tuning.MissBurst)
		s.emit(Event{Kind: EventMiss, X: t.X, Y: t.Y})
		n++
	}
	return n
}

func (s *Session) loseLife() {
	if s.Cannon.LoseLife() {
		s.over = true
	}
}
