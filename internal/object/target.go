package object

import (
	"math"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/physics"
)

// BodyStyle selects how a target body is drawn.
type BodyStyle int

const (
	BodyStar  BodyStyle = iota // Two-layer star polygon
	BodyRound                  // Disc with an inner core and a rotating spark
)

// TrailStyle selects how a target trail is drawn.
type TrailStyle int

const (
	TrailStreaks TrailStyle = iota // Three parallel streaks
	TrailTaper                     // One streak that thins and fades along its length
)

// TargetSpec describes the random ranges a target is reset from and how it looks.
type TargetSpec struct {
	FallSpeedMin float64
	FallSpeedMax float64
	DriftMax     float64 // Horizontal speed is drawn from [-DriftMax, DriftMax]
	RadiusMin    int
	RadiusMax    int
	SpinMax      float64 // Rotation speed is drawn from [-SpinMax, SpinMax]

	SpawnMargin   float64 // Horizontal clearance from the field edges at spawn
	SpawnAboveMin float64 // Spawn height above the field is drawn from [SpawnAboveMin, SpawnAboveMax]
	SpawnAboveMax float64
	BounceMargin  float64 // Distance from the field edges where drift reverses
	MissMargin    float64 // How far below the field the body must be to count as a miss

	TrailLength int
	TrailLift   float64 // Samples are taken this fraction of the radius above the center
	TrailSeed   bool    // Pre-fill the trail above the body on reset

	Body       BodyStyle
	TrailStyle TrailStyle
	Points     int     // Star points for BodyStar
	InnerRatio float64 // Inner/outer radius ratio for BodyStar
}

// Target is a falling star. Its trail is cosmetic: collisions only ever use
// the current center and radius.
type Target struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Rotation float64
	Spin     float64
	Trail    *Trail

	spec      *TargetSpec
	destroyed bool
	pts       []draw.Point
	line      []draw.Point
}

// NewTarget allocates a target with trail storage for spec. Call Reset
// before use.
func NewTarget(spec *TargetSpec) *Target {
	return &Target{spec: spec, Trail: NewTrail(spec.TrailLength)}
}

// Reset puts the target in a fresh random state above the field.
func (t *Target) Reset(field Field, rng *Rand) {
	s := t.spec
	t.X = rng.Uniform(s.SpawnMargin, field.Width-s.SpawnMargin)
	t.Y = -rng.Uniform(s.SpawnAboveMin, s.SpawnAboveMax)
	t.VX = rng.Uniform(-s.DriftMax, s.DriftMax)
	t.VY = rng.Uniform(s.FallSpeedMin, s.FallSpeedMax)
	t.Radius = float64(rng.IntRange(s.RadiusMin, s.RadiusMax))
	t.Rotation = rng.Uniform(0, 2*math.Pi)
	t.Spin = rng.Uniform(-s.SpinMax, s.SpinMax)
	t.destroyed = false

	t.Trail.Reset()
	if s.TrailSeed {
		above := math.Max(0, math.Floor(t.Radius*0.8))
		for i := 0; i < t.Trail.Cap(); i++ {
			t.Trail.PushOldest(draw.Point{X: t.X, Y: t.Y - above - float64(i)*t.VY*0.6})
		}
	}
}

// Place moves the target to an exact state. Used to stage deterministic scenarios.
func (t *Target) Place(x, y, vx, vy, radius float64) {
	t.X, t.Y = x, y
	t.VX, t.VY = vx, vy
	t.Radius = radius
	t.Spin = 0
	t.destroyed = false
	t.Trail.Reset()
}

// Update records a trail sample, moves the target one tick and bounces it off
// the side margins.
func (t *Target) Update(field Field) {
	t.Trail.Push(draw.Point{X: t.X, Y: t.Y - t.Radius*t.spec.TrailLift})
	t.X += t.VX
	t.Y += t.VY
	t.Rotation += t.Spin

	m := t.spec.BounceMargin
	if t.X < m {
		t.X = m
		t.VX = -t.VX
	} else if t.X > field.Width-m {
		t.X = field.Width - m
		t.VX = -t.VX
	}
}

// PastBottom reports whether the target has crossed the bottom boundary.
func (t *Target) PastBottom(field Field) bool {
	return t.Y-t.Radius > field.Height+t.spec.MissMargin
}

// Rect returns the collision box derived from the current center and radius.
func (t *Target) Rect() physics.Rect {
	return physics.Box(t.X, t.Y, t.Radius)
}

// BulletOrigin returns where a hostile bullet fired by this target appears.
func (t *Target) BulletOrigin() (x, y float64) {
	return t.X, t.Y + t.Radius + 6
}

// Draw renders the trail first, then the body.
func (t *Target) Draw(d draw.Drawer) {
	switch t.spec.TrailStyle {
	case TrailStreaks:
		t.drawStreaks(d)
	case TrailTaper:
		t.drawTaper(d)
	}

	center := draw.Point{X: t.X, Y: t.Y}
	switch t.spec.Body {
	case BodyStar:
		t.pts = draw.AppendStarPoints(t.pts[:0], t.X, t.Y, t.Radius, t.spec.InnerRatio, t.Rotation, t.spec.Points)
		d.FillPolygon(t.pts, ColorGold)
		t.pts = draw.AppendStarPoints(t.pts[:0], t.X, t.Y, math.Floor(t.Radius*0.45), 0.6, t.Rotation+0.1, t.spec.Points)
		d.FillPolygon(t.pts, ColorGoldDark)
	case BodyRound:
		d.FillCircle(center, t.Radius, ColorGold)
		d.FillCircle(center, math.Max(2, math.Floor(t.Radius/3)), ColorGoldDark)
		spike := t.Radius + 6
		tip := draw.Point{X: t.X + math.Cos(t.Rotation)*spike, Y: t.Y + math.Sin(t.Rotation)*spike}
		t.line = append(t.line[:0], center, tip)
		d.Polyline(t.line, ColorSpark, 2, false)
	}
}

var streakOffsets = [3]float64{-10, 0, 10}

func (t *Target) drawStreaks(d draw.Drawer) {
	if t.Trail.Len() < 2 {
		return
	}
	t.pts = t.Trail.Points(t.pts[:0])
	for i, off := range streakOffsets {
		t.line = draw.OffsetPoints(t.line[:0], t.pts, off, 0)
		d.Polyline(t.line, ColorGold, 1, true)
		if i == 1 {
			d.Polyline(t.line, ColorGoldDark, 2, false)
		}
	}
}

func (t *Target) drawTaper(d draw.Drawer) {
	n := t.Trail.Len()
	if n < 2 {
		return
	}
	for i := 0; i+1 < n; i++ {
		f := float64(i) / float64(n-1)
		width := math.Floor((1-f)*t.Radius*0.9) + 1
		fade := (220 * (1 - f)) / 255
		t.line = append(t.line[:0], t.Trail.At(i), t.Trail.At(i+1))
		d.Polyline(t.line, ColorGold.Scale(fade), width, false)
	}
}

// MarkDestroyed flags the target for removal at the next sweep.
func (t *Target) MarkDestroyed() {
	t.destroyed = true
}

// IsDestroyed reports whether the target is flagged for removal.
func (t *Target) IsDestroyed() bool {
	return t.destroyed
}
