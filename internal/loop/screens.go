package loop

import (
	"context"
	"fmt"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

type backdropDot struct {
	p draw.Point
}

// newBackdrop lays out the static background starfield.
func newBackdrop(field object.Field) []backdropDot {
	w, h := int(field.Width), int(field.Height)
	if w <= 0 || h <= 0 {
		return nil
	}
	dots := make([]backdropDot, config.BackdropDots)
	for i := range dots {
		dots[i].p = draw.Point{
			X: float64((i * config.BackdropStrideX) % w),
			Y: float64((i * config.BackdropStrideY) % h),
		}
	}
	return dots
}

// HUD positions in field units.
const (
	hudMargin   = 12
	hudLineStep = 26
)

// Render draws one frame: backdrop, stars with their trails, bullets,
// lasers, cannon, particles, then the HUD.
func (s *Session) Render(d draw.Drawer) error {
	d.BeginFrame(object.ColorBackground)

	for _, dot := range s.backdrop {
		d.FillCircle(dot.p, 1, object.ColorBackdrop)
	}
	for _, t := range s.targets.Active() {
		t.Draw(d)
	}
	for i := range s.bullets {
		s.bullets[i].Draw(d)
	}
	for i := range s.projectiles {
		s.projectiles[i].Draw(d)
	}
	s.Cannon.Draw(d)
	s.particles.Draw(d)

	drawHUD(d, s.field, s.Cannon.Score, s.Cannon.Lives, s.tuning.Hint)

	return d.Present()
}

// drawHUD draws the score, lives and the control hint.
func drawHUD(d draw.Drawer, field object.Field, score, lives int, hint string) {
	d.Text(draw.Point{X: hudMargin, Y: hudMargin}, fmt.Sprintf("Score: %d", score), object.ColorWhite, draw.TextNormal, draw.AlignLeft)
	d.Text(draw.Point{X: hudMargin, Y: hudMargin + hudLineStep}, fmt.Sprintf("Lives: %d", lives), object.ColorWhite, draw.TextNormal, draw.AlignLeft)
	if hint != "" {
		d.Text(draw.Point{X: field.Width - hudMargin, Y: hudMargin}, hint, object.ColorHint, draw.TextNormal, draw.AlignRight)
	}
}

// RenderGameOver draws one frame of the game-over screen.
func RenderGameOver(d draw.Drawer, field object.Field, score int) error {
	d.BeginFrame(object.ColorBackground)
	cx, cy := field.Width/2, field.Height/2
	d.Text(draw.Point{X: cx, Y: cy - 90}, "GAME OVER", object.ColorGameOver, draw.TextLarge, draw.AlignCenter)
	d.Text(draw.Point{X: cx, Y: cy - 10}, fmt.Sprintf("Final Score: %d", score), object.ColorWhite, draw.TextNormal, draw.AlignCenter)
	d.Text(draw.Point{X: cx, Y: cy + 36}, "Press ESC or Q to quit.", object.ColorHighlight, draw.TextNormal, draw.AlignCenter)
	return d.Present()
}

// ScreenPresenter shows the final score until the player quits or confirms,
// redrawing at the game-over frame rate.
type ScreenPresenter struct {
	Drawer draw.Drawer
	Input  Input
	Pacer  Pacer
	Field  object.Field
}

// GameOver implements Presenter. Context cancellation ends the screen
// without error.
func (p *ScreenPresenter) GameOver(ctx context.Context, r Result) error {
	if rs, ok := p.Input.(interface{ Reset() }); ok {
		rs.Reset()
	}
	for {
		if err := RenderGameOver(p.Drawer, p.Field, r.Score); err != nil {
			return fmt.Errorf("present game over screen: %w", err)
		}

		in := p.Input.Sample()
		if in.Quit || in.Confirm {
			return nil
		}
		if _, err := p.Pacer.Wait(ctx); err != nil {
			return nil
		}
	}
}
