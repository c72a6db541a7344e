package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lambda/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score        string // "<score> (d=<rate> Hz)"
	Population   int
	MaxBodies    int
	Tick         int64
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the score line at the top and the status line below it.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	h.renderer.DrawTextCentered(data.Score, data.ScreenWidth/2, 12, 28, t.TitleColor)

	rl.DrawText(
		fmt.Sprintf("Galaxies: %d (max %d) | Tick: %d | FPS: %d", data.Population, data.MaxBodies, data.Tick, data.FPS),
		10, data.ScreenHeight-45, 14, t.LabelColor,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, data.ScreenHeight-65, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %dus  p95: %dus", stats.MeanTick.Microseconds(), stats.P95Tick.Microseconds()), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Pairs: %.0f  %dns/pair", stats.MeanPairs, stats.PairCost.Nanoseconds()), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-10s %6dus %5.1f%%", phase, stats.PhaseMean[phase].Microseconds(), pct), x, y, 12, color)
		y += 14
	}
}
