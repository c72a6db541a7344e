package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lambda/renderer"
	"github.com/pthm-cable/lambda/ui"
)

// maxFrameDT caps the simulated time of one frame so a stalled window does
// not fling galaxies across the screen.
const maxFrameDT = 1.0 / 20

const controlsText = "[Click+Hold] Push  [Space] Pause  [<>] Speed  [P] Perf  [F11] Fullscreen"

// initWindowUI creates the raylib side of the game. The window must exist.
func (g *Game) initWindowUI() {
	w, h := int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height)

	g.hud = ui.NewHUD()
	g.menu = ui.NewMenu()
	g.inspector = ui.NewInspector(10, 60, 220, g.cfg.Universe.CollapseSize)
	g.perfPanel = ui.NewPerfPanel(w-250, 60)
	g.background = renderer.NewBackgroundRenderer(w, h, g.seed, g.cfg.Screen.Stars, 6, 8, 20)
	g.galaxies = renderer.NewGalaxyRenderer(g.camera)
}

// Update handles input and advances the simulation by one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused || g.session.State() != StatePlaying {
		return
	}

	dt := min(float64(rl.GetFrameTime()), maxFrameDT)
	in := Input{PushHeld: g.pushHeld, PointerX: g.pointerX, PointerY: g.pointerY}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(dt, in)
		if g.session.State() != StatePlaying {
			return
		}
	}
}

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	g.background.Draw(float32(rl.GetTime()))

	if g.session.State() == StatePlaying {
		g.drawUniverse()
	}

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	switch g.session.State() {
	case StateTitle:
		if g.menu.DrawTitle(w, h, g.lastScore()) == ui.MenuStart {
			g.Start()
		}
	case StateIntro:
		g.menu.DrawIntro(w, h, g.session.IntroText())
	case StatePlaying:
		g.drawPlayingUI(w, h)
	}

	rl.EndDrawing()
}

// drawUniverse draws the galaxies and the push ring in 3D.
func (g *Game) drawUniverse() {
	g.galaxies.Sync(g.camera)
	g.galaxies.Begin()
	for _, b := range g.Bodies() {
		g.galaxies.Draw(renderer.Disc{
			Position: b.Position,
			Angle:    b.Angle,
			Scale:    b.Scale,
			R:        b.Tint.R,
			G:        b.Tint.G,
			B:        b.Tint.B,
			Spawning: b.Spawning,
		})
	}
	if pos, ok := g.universe.Pusher(); ok {
		_, frac := math.Modf(rl.GetTime() * 2)
		g.galaxies.DrawPushRing(pos, frac)
	}
	g.galaxies.End()
}

func (g *Game) drawPlayingUI(w, h int32) {
	u := g.universe
	g.hud.Draw(ui.HUDData{
		Score:        u.HUD(),
		Population:   u.Count(),
		MaxBodies:    u.MaxBodies(),
		Tick:         u.Tick(),
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  w,
		ScreenHeight: h,
	})
	g.hud.DrawControls(h, controlsText)

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if hit, ok := g.camera.ScreenToGround(g.pointerX, g.pointerY); ok {
		if b, ok := u.GalaxyAt(hit); ok {
			g.inspector.Draw(inspectorData(b))
		}
	}

	if g.menu.DrawQuit(w) == ui.MenuQuit {
		g.Stop()
	}
}

func inspectorData(b BodyView) ui.InspectorData {
	return ui.InspectorData{
		Name:     b.Name(),
		Diameter: b.Diameter,
		Target:   b.Target,
		Scale:    b.Scale,
		Speed:    b.Speed,
		Angle:    b.Angle,
		Spin:     b.Spin,
		Spawning: b.Spawning,
		Tint: rl.Color{
			R: uint8(b.Tint.R * 255),
			G: uint8(b.Tint.G * 255),
			B: uint8(b.Tint.B * 255),
			A: 255,
		},
	}
}

// lastScore formats the result of the last finished game for the title screen.
func (g *Game) lastScore() string {
	res, ok := g.session.LastResult()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d (d=%.3f Hz)", res.Score, res.MaxRate)
}
