package object

import (
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/physics"
)

// CannonSpec describes the player's cannon.
type CannonSpec struct {
	Speed        float64 // Horizontal units per tick while a direction is held
	Width        float64 // Base width (also the collision box width)
	Height       float64 // Base height
	BaseOffset   float64 // Distance from the bottom of the field to the base center
	EdgeMargin   float64 // Extra clearance kept between the base and the field edges
	MuzzleOffset float64 // Distance above the base center where lasers appear
	BarrelWidth  float64
	BarrelHeight float64
	Inset        float64 // Horizontal inset of the inner highlight
}

// Cannon is the player-controlled launcher at the bottom of the field.
// It owns the session's lives and score.
type Cannon struct {
	X, Y  float64
	Spec  CannonSpec
	Lives int
	Score int
}

// NewCannon places a cannon at the bottom center of the field.
func NewCannon(spec CannonSpec, field Field, lives int) *Cannon {
	return &Cannon{
		X:     field.CenterX(),
		Y:     field.Height - spec.BaseOffset,
		Spec:  spec,
		Lives: lives,
	}
}

// Update moves the cannon according to the held directions and clamps it to
// the field minus its margin. Holding both directions cancels out.
func (c *Cannon) Update(in input.State, field Field) {
	dx := 0.0
	if in.Left {
		dx -= c.Spec.Speed
	}
	if in.Right {
		dx += c.Spec.Speed
	}
	c.X += dx
	c.Clamp(field)
}

// Clamp keeps the cannon inside the field bounds minus its margin.
func (c *Cannon) Clamp(field Field) {
	half := c.Spec.Width/2 + c.Spec.EdgeMargin
	c.X = physics.Clamp(c.X, half, field.Width-half)
}

// Muzzle returns where new lasers appear.
func (c *Cannon) Muzzle() (x, y float64) {
	return c.X, c.Y - c.Spec.MuzzleOffset
}

// Rect returns the collision box of the cannon base.
func (c *Cannon) Rect() physics.Rect {
	return physics.BoxWH(c.X, c.Y, c.Spec.Width, c.Spec.Height)
}

// AddScore increases the score. Negative amounts are ignored so the score
// never decreases.
func (c *Cannon) AddScore(points int) {
	if points > 0 {
		c.Score += points
	}
}

// LoseLife removes one life without going below zero and reports whether the
// cannon is out of lives.
func (c *Cannon) LoseLife() (dead bool) {
	if c.Lives > 0 {
		c.Lives--
	}
	return c.Lives <= 0
}

// Draw renders the base, the barrel and an inner highlight.
func (c *Cannon) Draw(d draw.Drawer) {
	s := c.Spec
	base := draw.RectCentered(c.X, c.Y, s.Width, s.Height)
	d.FillRect(base, ColorWhite)
	d.FillRect(draw.RectCentered(c.X, c.Y-20, s.BarrelWidth, s.BarrelHeight), ColorWhite)
	d.FillRect(base.Inset(s.Inset, 4), ColorHighlight)
}
