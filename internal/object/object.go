// Package object holds the entity types of a session (cannon, projectiles,
// targets, trails and particles) and the bounded collections that own them.
//
// Entities are plain records. Each type has its own Update and Draw; there is
// no shared base type and the loop calls them directly.
package object

import "github.com/tomz197/starfall/internal/draw"

// Field is the play area in field units. The origin is the top-left corner,
// y grows downward.
type Field struct {
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the field.
func (f Field) CenterX() float64 {
	return f.Width / 2
}

// Palette.
var (
	ColorBackground = draw.RGB(0, 0, 0)
	ColorWhite      = draw.RGB(255, 255, 255)
	ColorHighlight  = draw.RGB(230, 230, 230)
	ColorRed        = draw.RGB(255, 40, 40)
	ColorLaserGlow  = draw.RGB(255, 140, 140)
	ColorGold       = draw.RGB(255, 205, 60)
	ColorGoldDark   = draw.RGB(200, 140, 20)
	ColorSpark      = draw.RGB(255, 230, 120)
	ColorBullet     = draw.RGB(255, 210, 80)
	ColorBulletRim  = draw.RGB(200, 150, 20)
	ColorImpact     = draw.RGB(255, 110, 60)
	ColorHint       = draw.RGB(180, 180, 180)
	ColorGameOver   = draw.RGB(255, 80, 80)
	ColorBackdrop   = draw.RGB(18, 18, 18)
)
