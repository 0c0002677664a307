package object

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// ProjectileKind tells lasers fired by the cannon apart from bullets fired by stars.
type ProjectileKind int

const (
	Laser      ProjectileKind = iota // Fired upward by the cannon
	StarBullet                       // Fired downward by a target
)

// ProjectileSpec describes one kind of projectile.
type ProjectileSpec struct {
	Speed      float64 // Units per tick
	Radius     float64
	CullMargin float64 // How far past the field edge it travels before being culled
}

// Projectile is a round shot travelling straight up or down at a fixed speed.
type Projectile struct {
	X, Y   float64
	VY     float64
	Radius float64
	Kind   ProjectileKind

	margin    float64
	destroyed bool
}

// NewLaser creates a laser at the cannon's muzzle.
func NewLaser(x, y float64, spec ProjectileSpec) Projectile {
	return Projectile{X: x, Y: y, VY: -spec.Speed, Radius: spec.Radius, Kind: Laser, margin: spec.CullMargin}
}

// NewStarBullet creates a hostile bullet just below a target.
func NewStarBullet(x, y float64, spec ProjectileSpec) Projectile {
	return Projectile{X: x, Y: y, VY: spec.Speed, Radius: spec.Radius, Kind: StarBullet, margin: spec.CullMargin}
}

// Update advances the projectile by one tick.
func (p *Projectile) Update() {
	p.Y += p.VY
}

// Offscreen reports whether the projectile left the field in its direction of travel.
func (p *Projectile) Offscreen(field Field) bool {
	if p.VY < 0 {
		return p.Y < -p.margin
	}
	return p.Y > field.Height+p.margin
}

// MarkDestroyed flags the projectile for removal at the next cull.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed reports whether the projectile is flagged for removal.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Rect returns the collision box.
func (p *Projectile) Rect() physics.Rect {
	return physics.Box(p.X, p.Y, p.Radius)
}

// Draw renders the projectile as a filled dot with a thin rim.
func (p *Projectile) Draw(d draw.Drawer) {
	c := draw.Point{X: p.X, Y: p.Y}
	switch p.Kind {
	case Laser:
		d.FillCircle(c, p.Radius, ColorRed)
		d.StrokeCircle(c, p.Radius+1, ColorLaserGlow, 1)
	case StarBullet:
		d.FillCircle(c, p.Radius, ColorBullet)
		d.StrokeCircle(c, p.Radius-2, ColorBulletRim, 1)
	}
}
