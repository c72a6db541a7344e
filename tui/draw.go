package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/lambda/game"
	"github.com/pthm-cable/lambda/ui"
)

var (
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePush  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

func (a *App) draw(t float64) {
	a.screen.Clear()
	a.drawStars(t)

	s := a.game.Session()
	switch s.State() {
	case game.StateTitle:
		a.drawTitle()
	case game.StateIntro:
		a.drawCentered(a.view.Rows/2-1, s.IntroText(), styleText)
		a.drawCentered(a.view.Rows-2, "click or Enter to continue", styleDim)
	case game.StatePlaying:
		a.drawUniverse()
		a.drawHUD()
	}

	a.screen.Show()
}

func (a *App) drawStars(t float64) {
	if a.stars == nil {
		return
	}
	for i, st := range a.stars.Stars() {
		col := int(st.X * float64(a.view.Cols))
		row := int(st.Y * float64(a.view.Rows))
		r, g, b := Shade(0.85, 0.88, 1, a.stars.Brightness(i, t)*0.6)
		a.screen.SetContent(col, row, '·', nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b)))
	}
}

// drawUniverse rasterises galaxies by casting every cell onto the ground.
func (a *App) drawUniverse() {
	cam := a.game.Camera()
	u := a.game.Universe()

	for row := 0; row < a.view.Rows; row++ {
		for col := 0; col < a.view.Cols; col++ {
			hit, ok := cam.ScreenToGround(a.view.CellToScreen(col, row))
			if !ok {
				continue
			}
			b, ok := u.GalaxyAt(hit)
			if !ok {
				continue
			}
			ch := Glyph(groundDist(hit, b.Position), b.Scale)
			if ch == 0 {
				continue
			}
			bright := 1.0
			if b.Spawning {
				bright = 0.6
			}
			r, g, bl := Shade(b.Tint.R, b.Tint.G, b.Tint.B, bright)
			a.screen.SetContent(col, row, ch, nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, bl)))
		}
	}

	if pos, ok := u.Pusher(); ok {
		if x, y, ok := cam.WorldToScreen(pos); ok {
			if col, row, ok := a.view.ScreenToCell(x, y); ok {
				a.screen.SetContent(col, row, '+', nil, stylePush)
			}
		}
	}
}

func (a *App) drawHUD() {
	u := a.game.Universe()
	a.drawCentered(0, u.HUD(), styleText)

	status := fmt.Sprintf("Galaxies: %d (max %d)  [Space] pause  [Esc] quit game  [q] exit", u.Count(), u.MaxBodies())
	if a.paused {
		status = "PAUSED  " + status
	}
	a.drawText(1, a.view.Rows-1, status, styleDim)
}

func (a *App) drawTitle() {
	top := a.view.Rows / 3
	a.drawCentered(top, ui.Title, styleTitle)
	if res, ok := a.game.Session().LastResult(); ok {
		a.drawCentered(top+2, fmt.Sprintf("Last universe: %d (d=%.3f Hz)", res.Score, res.MaxRate), styleText)
	}
	a.drawCentered(a.view.Rows*2/3, "[ Start ]  click or press Enter", styleText)
}

// drawCentered draws possibly multi-line text centred horizontally.
func (a *App) drawCentered(row int, text string, style tcell.Style) {
	for i, line := range strings.Split(text, "\n") {
		col := (a.view.Cols - len([]rune(line))) / 2
		a.drawText(max(col, 0), row+i, line, style)
	}
}

func (a *App) drawText(col, row int, text string, style tcell.Style) {
	for _, r := range text {
		if col >= a.view.Cols {
			return
		}
		a.screen.SetContent(col, row, r, nil, style)
		col++
	}
}
