package loop

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

const never = int64(1) << 40

// quietTuning disables automatic spawning so tests can stage entities.
func quietTuning() config.Tuning {
	t := config.Classic()
	t.LaserCooldownMs = never
	t.SpawnIntervalMs = never
	return t
}

func TestTrySpawnProjectileCooldown(t *testing.T) {
	s := NewSession(config.Classic(), object.NewRand(1), 0)

	spawned := 0
	var lastSpawn int64
	for now := int64(1); now <= 1000; now++ {
		if s.TrySpawnProjectile(now, 180) {
			if spawned > 0 && now-lastSpawn < 180 {
				t.Fatalf("spawned at %d only %dms after the previous laser", now, now-lastSpawn)
			}
			spawned++
			lastSpawn = now
			// Keep the cap out of the way.
			s.projectiles = s.projectiles[:0]
		}
	}
	if spawned != 5 {
		t.Errorf("spawned %d lasers in 1000ms, want 5", spawned)
	}
	if lastSpawn != 900 {
		t.Errorf("last laser at %d, want 900", lastSpawn)
	}
}

func TestTrySpawnProjectileIsTimeBased(t *testing.T) {
	// A slow frame rate must not delay a spawn past the first frame that is
	// due, and many fast frames must not spawn more often.
	s := NewSession(config.Classic(), object.NewRand(1), 0)
	if s.TrySpawnProjectile(179, 180) {
		t.Fatal("spawned before the cooldown elapsed")
	}
	if !s.TrySpawnProjectile(180, 180) {
		t.Fatal("did not spawn exactly when the cooldown elapsed")
	}
	for now := int64(181); now < 360; now++ {
		if s.TrySpawnProjectile(now, 180) {
			t.Fatalf("spawned again at %d", now)
		}
	}
	if !s.TrySpawnProjectile(500, 180) {
		t.Fatal("did not spawn after a long frame")
	}
}

func TestTrySpawnProjectileCap(t *testing.T) {
	tun := config.Classic()
	tun.MaxProjectiles = 2
	s := NewSession(tun, object.NewRand(1), 0)
	if !s.TrySpawnProjectile(0, 0) || !s.TrySpawnProjectile(0, 0) {
		t.Fatal("spawns below the cap were refused")
	}
	if s.TrySpawnProjectile(0, 0) {
		t.Fatal("spawned past the cap")
	}
	if len(s.Projectiles()) != 2 {
		t.Errorf("projectiles = %d, want 2", len(s.Projectiles()))
	}
}

func TestTrySpawnTargetTimerResetsOnlyOnSuccess(t *testing.T) {
	tun := config.Classic()
	tun.MaxTargets = 1
	s := NewSession(tun, object.NewRand(3), 0)

	if !s.TrySpawnTarget(900, 900) {
		t.Fatal("first target did not spawn after one interval")
	}
	if s.TrySpawnTarget(1800, 900) {
		t.Fatal("spawned past the cap")
	}
	s.Targets()[0].MarkDestroyed()
	s.targets.Sweep()
	if !s.TrySpawnTarget(1801, 900) {
		t.Fatal("a refused spawn restarted the interval timer")
	}
}

func TestTargetSpawnsAboveField(t *testing.T) {
	tun := config.Classic()
	s := NewSession(tun, object.NewRand(9), 0)
	for i := 0; i < tun.MaxTargets; i++ {
		if !s.TrySpawnTarget(int64(i+1)*900, 900) {
			t.Fatalf("spawn %d refused", i)
		}
	}
	for _, tg := range s.Targets() {
		if tg.Y >= 0 {
			t.Errorf("target spawned inside the field at y=%v", tg.Y)
		}
		if tg.X < tun.Target.SpawnMargin || tg.X > tun.Field.Width-tun.Target.SpawnMargin {
			t.Errorf("target spawned outside the margins at x=%v", tg.X)
		}
	}
}

func TestHitAfterExactlyKTicks(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	// Laser moves up 10/tick with radius 4; the star falls 2/tick with radius 20.
	// The gap between the centers closes 12/tick from 200 and the boxes
	// overlap once it is below 24, which happens on tick 15.
	tg := s.AddTarget(450, 100, 0, 2, 20)
	if tg == nil || !s.AddProjectile(450, 300) {
		t.Fatal("could not stage the scenario")
	}

	for tick := 1; tick <= 14; tick++ {
		rep := s.Step(int64(tick)*16, input.State{})
		if rep.Hits != 0 || s.Cannon.Score != 0 {
			t.Fatalf("hit registered early at tick %d", tick)
		}
	}
	if len(s.Projectiles()) != 1 || len(s.Targets()) != 1 {
		t.Fatal("entities disappeared before the hit")
	}

	rep := s.Step(15*16, input.State{})
	if rep.Hits != 1 {
		t.Fatalf("hits = %d at tick 15, want 1", rep.Hits)
	}
	if s.Cannon.Score != 10 {
		t.Errorf("score = %d, want 10", s.Cannon.Score)
	}
	if len(s.Projectiles()) != 0 || len(s.Targets()) != 0 {
		t.Errorf("laser or star survived the hit (%d, %d)", len(s.Projectiles()), len(s.Targets()))
	}
	if s.Particles().Len() == 0 {
		t.Error("hit did not emit a burst")
	}
	var sawHit bool
	for _, e := range rep.Events {
		if e.Kind == EventHit {
			sawHit = true
			if e.Score != 10 {
				t.Errorf("hit event score = %d", e.Score)
			}
		}
	}
	if !sawHit {
		t.Error("no hit event")
	}
}

func TestProjectileDestroysAtMostOneTarget(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	s.AddTarget(450, 300, 0, 0, 20)
	s.AddTarget(455, 300, 0, 0, 20)
	s.AddProjectile(450, 310)

	rep := s.Step(16, input.State{})
	if rep.Hits != 1 {
		t.Fatalf("hits = %d, want 1", rep.Hits)
	}
	if len(s.Targets()) != 1 {
		t.Errorf("targets left = %d, want 1", len(s.Targets()))
	}
	if s.Cannon.Score != 10 {
		t.Errorf("score = %d, want 10", s.Cannon.Score)
	}
}

func TestTargetDestroyedByAtMostOneProjectile(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	s.AddTarget(450, 300, 0, 0, 20)
	s.AddProjectile(450, 310)
	s.AddProjectile(452, 312)

	rep := s.Step(16, input.State{})
	if rep.Hits != 1 {
		t.Fatalf("hits = %d, want 1", rep.Hits)
	}
	if len(s.Projectiles()) != 1 {
		t.Errorf("projectiles left = %d, want 1", len(s.Projectiles()))
	}
}

func TestTouchingBoxesDoNotCollide(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	// After one tick the laser box top sits exactly on the star box bottom.
	s.AddTarget(450, 100, 0, 0, 20)
	s.AddProjectile(450, 134)
	if rep := s.Step(16, input.State{}); rep.Hits != 0 {
		t.Fatal("boxes sharing an edge collided")
	}
}

func TestMissWithLastLifeEndsFrame(t *testing.T) {
	tun := quietTuning()
	tun.Lives = 1
	s := NewSession(tun, object.NewRand(1), 0)
	h := tun.Field.Height
	s.AddTarget(300, h+tun.Target.MissMargin+20, 0, 1, 20)

	rep := s.Step(16, input.State{})
	if rep.Misses != 1 {
		t.Fatalf("misses = %d, want 1", rep.Misses)
	}
	if s.Cannon.Lives != 0 {
		t.Errorf("lives = %d, want 0", s.Cannon.Lives)
	}
	if !rep.GameOver || !s.Over() {
		t.Fatal("session did not end on the frame lives reached zero")
	}
	if len(s.Targets()) != 0 {
		t.Error("missed star was not removed")
	}
	last := rep.Events[len(rep.Events)-1]
	if last.Kind != EventGameOver {
		t.Errorf("last event = %v, want game over", last.Kind)
	}

	frame := s.Frame()
	rep = s.Step(32, input.State{})
	if !rep.GameOver || s.Frame() != frame {
		t.Error("a finished session kept simulating")
	}
}

func TestMissCostsExactlyOneLife(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	h := s.Field().Height
	s.AddTarget(300, h, 0, 2, 20)

	for tick := 1; tick <= 100 && len(s.Targets()) > 0; tick++ {
		rep := s.Step(int64(tick)*16, input.State{})
		if rep.GameOver {
			t.Fatal("game ended with lives left")
		}
	}
	if s.Cannon.Lives != 2 {
		t.Errorf("lives = %d, want 2", s.Cannon.Lives)
	}
}

func TestLivesNeverGoNegative(t *testing.T) {
	tun := quietTuning()
	tun.Lives = 1
	s := NewSession(tun, object.NewRand(1), 0)
	h := tun.Field.Height
	for i := 0; i < 3; i++ {
		s.AddTarget(100+float64(i)*100, h+100, 0, 1, 20)
	}
	rep := s.Step(16, input.State{})
	if rep.Misses != 3 {
		t.Errorf("misses = %d, want 3", rep.Misses)
	}
	if s.Cannon.Lives != 0 {
		t.Errorf("lives = %d, want 0", s.Cannon.Lives)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

func TestStarBulletHitsCannon(t *testing.T) {
	tun := config.Barrage()
	tun.LaserCooldownMs = never
	tun.SpawnIntervalMs = never
	s := NewSession(tun, object.NewRand(1), 0)
	c := s.Cannon
	s.bullets = append(s.bullets, object.NewStarBullet(c.X, c.Y-30, tun.Bullet))

	for tick := 1; tick <= 3; tick++ {
		s.Step(int64(tick)*16, input.State{})
	}
	if c.Lives != tun.Lives {
		t.Fatalf("bullet hit early, lives = %d", c.Lives)
	}
	rep := s.Step(64, input.State{})
	if rep.CannonHits != 1 || c.Lives != tun.Lives-1 {
		t.Fatalf("cannon hits = %d, lives = %d", rep.CannonHits, c.Lives)
	}
	if len(s.Bullets()) != 0 {
		t.Error("bullet survived hitting the cannon")
	}
}

func TestQuitStopsSimulation(t *testing.T) {
	s := NewSession(config.Classic(), object.NewRand(1), 0)
	rep := s.Step(10_000, input.State{Quit: true, Left: true})
	if !rep.Quit || s.Frame() != 0 || len(s.Projectiles()) != 0 {
		t.Errorf("quit frame was simulated: %+v", rep)
	}
}

func TestCapsHoldOverLongRuns(t *testing.T) {
	for _, tun := range []config.Tuning{config.Classic(), config.Barrage(), config.Hard.Apply(config.Barrage())} {
		t.Run(tun.Name, func(t *testing.T) {
			tun.Lives = 1 << 20
			rng := object.NewRand(42)
			s := NewSession(tun, object.NewRand(7), 0)
			for frame := int64(1); frame <= 20_000; frame++ {
				in := input.State{Left: rng.Chance(0.3), Right: rng.Chance(0.3)}
				s.Step(frame*1000/60, in)
				if err := s.CheckInvariants(); err != nil {
					t.Fatalf("frame %d: %v", frame, err)
				}
			}
			if s.Cannon.Score == 0 {
				t.Error("no star was ever hit")
			}
		})
	}
}

func TestSessionDeterministicForSeed(t *testing.T) {
	run := func() (int, int, float64) {
		s := NewSession(config.Barrage(), object.NewRand(99), 0)
		for frame := int64(1); frame <= 3000; frame++ {
			s.Step(frame*16, input.State{Left: frame%200 < 50})
		}
		return s.Cannon.Score, s.Cannon.Lives, s.Cannon.X
	}
	s1, l1, x1 := run()
	s2, l2, x2 := run()
	if s1 != s2 || l1 != l2 || x1 != x2 {
		t.Errorf("same seed diverged: (%d %d %v) vs (%d %d %v)", s1, l1, x1, s2, l2, x2)
	}
}

func TestCheckInvariantsReportsCapBreach(t *testing.T) {
	s := NewSession(config.Classic(), object.NewRand(1), 0)
	for i := 0; i <= s.Tuning().MaxProjectiles; i++ {
		s.projectiles = append(s.projectiles, object.NewLaser(0, 0, s.Tuning().Laser))
	}
	if err := s.CheckInvariants(); !errors.Is(err, ErrCapExceeded) {
		t.Errorf("err = %v, want ErrCapExceeded", err)
	}
}

type idleInput struct{}

func (idleInput) Sample() input.State { return input.State{} }

func TestRunReportsBrokenInvariantAsFailure(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	for i := 0; i <= s.Tuning().MaxProjectiles; i++ {
		s.projectiles = append(s.projectiles, object.NewLaser(450, 300, s.Tuning().Laser))
	}
	clock := &StepClock{Step: 16}

	res, err := s.run(context.Background(), Options{
		Input:  idleInput{},
		Drawer: &draw.Recorder{},
		Clock:  clock,
		Pacer:  clock,
	}, log.New(io.Discard))
	if !errors.Is(err, ErrCapExceeded) {
		t.Fatalf("err = %v, want ErrCapExceeded", err)
	}
	if res.Reason != EndFailed {
		t.Errorf("reason = %v, want failed", res.Reason)
	}
	if res.Reason.String() != "failed" {
		t.Errorf("String() = %q", res.Reason.String())
	}
}

func TestRenderDrawsEntitiesAndHUD(t *testing.T) {
	s := NewSession(quietTuning(), object.NewRand(1), 0)
	s.AddTarget(200, 200, 0, 0, 30)
	s.AddTarget(600, 200, 0, 0, 30)
	s.AddProjectile(450, 400)

	var rec draw.Recorder
	if err := s.Render(&rec); err != nil {
		t.Fatal(err)
	}
	texts := rec.Texts()
	if len(texts) != 3 || texts[0] != "Score: 0" || texts[1] != "Lives: 3" {
		t.Errorf("unexpected HUD %q", texts)
	}
	// Two polygons per star body.
	if n := rec.Count(draw.OpFillPolygon); n != 4 {
		t.Errorf("filled polygons = %d, want 4", n)
	}
	if rec.Background != object.ColorBackground {
		t.Errorf("background = %v", rec.Background)
	}
}
