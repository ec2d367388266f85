package catcher

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/catch-arcade/internal/core"
	"github.com/vovakirdan/catch-arcade/internal/score"
	"github.com/vovakirdan/catch-arcade/internal/state"
)

// Visual characters
const (
	FloorChar   = '▔'
	FloorPlain  = '-'
	StarChar    = '·'
	ShooterRail = '─'
)

// Render scales at which decoration is still drawn.
const (
	backgroundScale = 1.0
	floorScale      = 0.75
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	_, settings := g.Quality()
	plain := !settings.AntiAliasing

	// Background detail goes first, then the floor
	if settings.RenderScale >= backgroundScale {
		g.drawBackground(dst)
	}
	if floorY := g.floorRow(); settings.RenderScale >= floorScale && floorY < dst.Height() {
		floor := FloorChar
		if plain {
			floor = FloorPlain
		}
		dst.DrawHLine(0, floorY, dst.Width(), floor, core.ColorGray)
	}

	// Entities in attach order
	for _, v := range g.layer.Visuals() {
		body := v.Body()
		if !body.Active() {
			continue
		}
		sp := v.Sprite()
		glyph := sp.Glyph
		if plain {
			glyph = sp.Plain
		}
		r := body.Box().Rect()
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				if y < 1 {
					continue
				}
				dst.SetColor(x, y, glyph, sp.Color)
			}
		}
	}

	g.sparks.Draw(dst, plain)
	g.drawHUD(dst)

	switch g.state.State() {
	case state.Start:
		g.drawCenteredMessage(dst, "CATCHER", "Press SPACE to start")
	case state.GameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("%s  |  Score: %d  |  SPACE to play again", reasonText(g.reason), g.score.Score()))
	default:
		if g.paused {
			g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
		}
	}
}

// floorRow is the screen row just under the miss line.
func (g *Game) floorRow() int {
	return int(math.Round(g.missLine)) + 1
}

func (g *Game) drawBackground(dst *core.Screen) {
	// Shooter rail
	row := int(math.Round(g.shooter.Pos.Y))
	dst.DrawHLine(0, row, dst.Width(), ShooterRail, core.ColorGray)

	// Fixed star pattern, independent of the gameplay stream
	for y := row + 2; y < dst.Height()-3; y += 3 {
		for x := (y * 7) % 11; x < dst.Width(); x += 13 {
			dst.SetColor(x, y, StarChar, core.ColorGray)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	tier, _ := g.Quality()
	elapsed := g.state.Elapsed().Truncate(time.Second)

	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", g.score.Score()), core.ColorBrightYellow)

	misses := fmt.Sprintf(" Misses: %d/%d ", g.score.ConsecutiveMisses(), g.score.MaxConsecutiveMisses())
	missColor := core.ColorWhite
	if g.score.ConsecutiveMisses() > 0 {
		missColor = core.ColorOrange
	}
	dst.DrawTextColor(18, 0, misses, missColor)

	right := fmt.Sprintf(" %s  %s ", elapsed, tier)
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subLen := utf8.RuneCountInString(subtitle)

	// Calculate box dimensions
	boxW := max(titleLen, subLen) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawTextColor(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorBrightCyan)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}

func reasonText(r score.Reason) string {
	switch r {
	case score.ReasonLethalCatch:
		return "Caught a bomb"
	case score.ReasonMissLimit:
		return "Too many misses"
	default:
		return "Over"
	}
}
