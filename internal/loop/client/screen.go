package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

const lineStep = 26

type notice struct {
	title string
	lines []string
}

var (
	shutdownNotice = notice{
		title: "SERVER SHUTTING DOWN",
		lines: []string{
			"The server is restarting for maintenance.",
			"Please reconnect in a moment.",
		},
	}
	idleNotice = notice{
		title: "INACTIVITY",
		lines: []string{
			"You have been inactive for too long.",
			"Reconnect to play again.",
		},
	}
)

var controlLines = []string{
	"A D / < >  . . . . Move",
	"Lasers fire automatically",
	"Q / ESC  . . . . . Quit",
}

// renderTitle draws the title screen. The start prompt blinks.
func renderTitle(d draw.Drawer, t config.Tuning) error {
	field := t.Field
	cx, cy := field.Width/2, field.Height/2
	d.BeginFrame(object.ColorBackground)

	for _, p := range draw.StarPoints(cx, cy-150, 40, 0.45, -math.Pi/2, 5) {
		d.FillCircle(p, 2, object.ColorGoldDark)
	}
	d.FillPolygon(draw.StarPoints(cx, cy-150, 34, 0.45, -math.Pi/2, 5), object.ColorGold)

	d.Text(draw.Point{X: cx, Y: cy - 80}, "S T A R F A L L", object.ColorGold, draw.TextLarge, draw.AlignCenter)
	d.Text(draw.Point{X: cx, Y: cy - 40}, fmt.Sprintf("~ %s ~", t.Name), object.ColorHint, draw.TextNormal, draw.AlignCenter)

	y := cy
	d.Text(draw.Point{X: cx, Y: y}, "Controls", object.ColorWhite, draw.TextNormal, draw.AlignCenter)
	for _, line := range controlLines {
		y += lineStep
		d.Text(draw.Point{X: cx, Y: y}, line, object.ColorHighlight, draw.TextNormal, draw.AlignCenter)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		d.Text(draw.Point{X: cx, Y: y + 2*lineStep}, ">>  Press SPACE to Start  <<", object.ColorWhite, draw.TextNormal, draw.AlignCenter)
	}
	return d.Present()
}

// renderNotice draws a full-screen notice with a disconnect countdown.
func renderNotice(d draw.Drawer, field object.Field, n notice, remaining time.Duration) error {
	cx, cy := field.Width/2, field.Height/2
	d.BeginFrame(object.ColorBackground)

	d.Text(draw.Point{X: cx, Y: cy - 3*lineStep}, n.title, object.ColorGameOver, draw.TextLarge, draw.AlignCenter)
	y := cy - lineStep
	for _, line := range n.lines {
		d.Text(draw.Point{X: cx, Y: y}, line, object.ColorWhite, draw.TextNormal, draw.AlignCenter)
		y += lineStep
	}

	secs := int(remaining/time.Second) + 1
	d.Text(draw.Point{X: cx, Y: y + lineStep}, fmt.Sprintf("Disconnecting in %d seconds...", secs), object.ColorHint, draw.TextNormal, draw.AlignCenter)
	d.Text(draw.Point{X: cx, Y: y + 2*lineStep}, "Press Q to disconnect now", object.ColorHighlight, draw.TextNormal, draw.AlignCenter)
	return d.Present()
}
