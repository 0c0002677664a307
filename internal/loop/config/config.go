// Package config centralizes all tunable game parameters.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/starfall/internal/object"
)

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	GameOverFPS       = 30
	GameOverFrameTime = time.Second / GameOverFPS
)

// Scoring and lives
const (
	ScorePerHit  = 10
	InitialLives = 3
)

// Remote sessions (SSH)
const (
	MaxSessions    = 64
	IdleTimeout    = 2 * time.Minute
	ShutdownGrace  = 10 * time.Second
	ShutdownNotice = 3 * time.Second
)

// Background starfield
const (
	BackdropDots    = 28
	BackdropStrideX = 53
	BackdropStrideY = 89
)

// Effect is a particle burst emitted in response to an event.
type Effect struct {
	Burst object.Burst
	Count int
	Life  object.LifeRange
}

// Tuning is the full parameter set of a session. Everything is fixed before
// the loop starts.
type Tuning struct {
	Name  string
	Field object.Field

	Cannon object.CannonSpec
	Lives  int

	Laser           object.ProjectileSpec
	LaserCooldownMs int64
	MaxProjectiles  int

	Target          object.TargetSpec
	SpawnIntervalMs int64
	MaxTargets      int
	Pooled          bool

	// Hostile bullets fired by targets. Disabled when StarBullets is false.
	StarBullets    bool
	Bullet         object.ProjectileSpec
	BulletChance   float64 // Per target, per tick
	MaxBullets     int
	CannonHitBurst Effect

	MaxParticles int
	HitBurst     Effect
	MissBurst    Effect  // Emitted around the cannon when a star gets past
	MissLift     float64 // Height above the cannon center where miss bursts appear

	ScorePerHit int
	Hint        string
}

// Classic is the capped, pooled variant: large five-point stars with three
// parallel golden streaks.
func Classic() Tuning {
	return Tuning{
		Name:  "classic",
		Field: object.Field{Width: 900, Height: 640},
		Cannon: object.CannonSpec{
			Speed:        7,
			Width:        68,
			Height:       22,
			BaseOffset:   48,
			EdgeMargin:   8,
			MuzzleOffset: 30,
			BarrelWidth:  10,
			BarrelHeight: 28,
			Inset:        6,
		},
		Lives: InitialLives,

		Laser:           object.ProjectileSpec{Speed: 10, Radius: 4, CullMargin: 20},
		LaserCooldownMs: 180,
		MaxProjectiles:  12,

		Target: object.TargetSpec{
			FallSpeedMin:  1.6,
			FallSpeedMax:  3.0,
			DriftMax:      1.0,
			RadiusMin:     22,
			RadiusMax:     36,
			SpinMax:       0.03,
			SpawnMargin:   40,
			SpawnAboveMin: 20,
			SpawnAboveMax: 90,
			BounceMargin:  20,
			MissMargin:    10,
			TrailLength:   6,
			TrailLift:     0.6,
			TrailSeed:     true,
			Body:          object.BodyStar,
			TrailStyle:    object.TrailStreaks,
			Points:        5,
			InnerRatio:    0.45,
		},
		SpawnIntervalMs: 900,
		MaxTargets:      6,
		Pooled:          true,

		MaxParticles: 120,
		HitBurst: Effect{
			Burst: object.Burst{
				Primary:      object.ColorGold,
				Accent:       object.ColorGoldDark,
				AccentChance: 0.4,
				JitterX:      10,
				JitterY:      10,
				Speed:        3.5,
				Gravity:      0.12,
				Drag:         0.99,
				MinSize:      2,
				MaxSize:      5,
			},
			Count: 18,
			Life:  object.LifeRange{Min: 22, Max: 44},
		},
		MissBurst: Effect{
			Burst: object.Burst{
				Primary: object.ColorImpact,
				JitterX: 12,
				Speed:   3.5,
				Gravity: 0.12,
				Drag:    0.99,
				MinSize: 2,
				MaxSize: 5,
			},
			Count: 8,
			Life:  object.LifeRange{Min: 20, Max: 20},
		},
		MissLift: 8,

		ScorePerHit: ScorePerHit,
		Hint:        "Move: ← → or A/D. Auto-fire. Avoid letting stars hit bottom.",
	}
}

// Barrage is the bullet-hell variant: smaller round stars with a tapered
// trail that fire golden bullets at the cannon.
func Barrage() Tuning {
	return Tuning{
		Name:  "barrage",
		Field: object.Field{Width: 800, Height: 600},
		Cannon: object.CannonSpec{
			Speed:        6,
			Width:        50,
			Height:       24,
			BaseOffset:   50,
			EdgeMargin:   8,
			MuzzleOffset: 32,
			BarrelWidth:  6,
			BarrelHeight: 28,
			Inset:        4,
		},
		Lives: InitialLives,

		Laser:           object.ProjectileSpec{Speed: 9, Radius: 4, CullMargin: 10},
		LaserCooldownMs: 200,
		MaxProjectiles:  16,

		Target: object.TargetSpec{
			FallSpeedMin:  1.5,
			FallSpeedMax:  3.0,
			DriftMax:      1.2,
			RadiusMin:     10,
			RadiusMax:     16,
			SpinMax:       0.04,
			SpawnMargin:   30,
			SpawnAboveMin: 20,
			SpawnAboveMax: 20,
			BounceMargin:  10,
			MissMargin:    34,
			TrailLength:   12,
			Body:          object.BodyRound,
			TrailStyle:    object.TrailTaper,
		},
		SpawnIntervalMs: 700,
		MaxTargets:      10,
		Pooled:          false,

		StarBullets:  true,
		Bullet:       object.ProjectileSpec{Speed: 4, Radius: 5, CullMargin: 20},
		BulletChance: 0.02,
		MaxBullets:   24,
		CannonHitBurst: Effect{
			Burst: object.Burst{
				Primary: object.ColorImpact,
				JitterX: 8,
				JitterY: 8,
				Speed:   3,
				Gravity: 0.12,
				Drag:    1,
				MinSize: 2,
				MaxSize: 5,
			},
			Count: 12,
			Life:  object.LifeRange{Min: 25, Max: 25},
		},

		MaxParticles: 160,
		HitBurst: Effect{
			Burst: object.Burst{
				Primary: object.ColorGold,
				JitterX: 6,
				JitterY: 6,
				Speed:   3,
				Gravity: 0.12,
				Drag:    1,
				MinSize: 2,
				MaxSize: 5,
			},
			Count: 14,
			Life:  object.LifeRange{Min: 30, Max: 50},
		},
		MissBurst: Effect{
			Burst: object.Burst{
				Primary: object.ColorImpact,
				JitterX: 12,
				Speed:   3,
				Gravity: 0.12,
				Drag:    1,
				MinSize: 2,
				MaxSize: 5,
			},
			Count: 8,
			Life:  object.LifeRange{Min: 20, Max: 20},
		},
		MissLift: 8,

		ScorePerHit: ScorePerHit,
		Hint:        "Move: ← → or A/D. Auto-fire lasers. Avoid golden bullets!",
	}
}

// Preset returns the named tuning.
func Preset(name string) (Tuning, error) {
	switch strings.ToLower(name) {
	case "", "classic":
		return Classic(), nil
	case "barrage":
		return Barrage(), nil
	}
	return Tuning{}, fmt.Errorf("unknown preset %q", name)
}

// Validate reports tunings that would break the session's invariants.
func (t Tuning) Validate() error {
	switch {
	case t.Field.Width <= 0 || t.Field.Height <= 0:
		return fmt.Errorf("field must be positive, got %vx%v", t.Field.Width, t.Field.Height)
	case t.MaxProjectiles < 0 || t.MaxTargets < 0 || t.MaxParticles < 0 || t.MaxBullets < 0:
		return fmt.Errorf("caps must not be negative")
	case t.Lives < 1:
		return fmt.Errorf("lives must be at least 1, got %d", t.Lives)
	case t.LaserCooldownMs < 0 || t.SpawnIntervalMs < 0:
		return fmt.Errorf("cooldowns must not be negative")
	case t.Target.RadiusMin > t.Target.RadiusMax:
		return fmt.Errorf("target radius range [%d, %d] is empty", t.Target.RadiusMin, t.Target.RadiusMax)
	case t.Target.FallSpeedMin > t.Target.FallSpeedMax:
		return fmt.Errorf("fall speed range [%v, %v] is empty", t.Target.FallSpeedMin, t.Target.FallSpeedMax)
	case t.Target.SpawnMargin*2 > t.Field.Width:
		return fmt.Errorf("spawn margin %v leaves no room in a field %v wide", t.Target.SpawnMargin, t.Field.Width)
	}
	return nil
}
