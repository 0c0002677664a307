package loop

import "github.com/tomz197/starfall/internal/loop/config"

// burst emits an effect at (x, y). Particles past the cap are dropped.
func (s *Session) burst(x, y float64, e config.Effect) int {
	if e.Count <= 0 {
		return 0
	}
	return s.particles.Emit(x, y, e.Burst, e.Count, e.Life, s.rng)
}
