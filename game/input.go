package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and pointer input for the window frontend.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	mouse := rl.GetMousePosition()
	g.pointerX = float64(mouse.X)
	g.pointerY = float64(mouse.Y)

	overQuit := rl.CheckCollisionPointRec(mouse, g.menu.QuitBounds(int32(rl.GetScreenWidth())))
	g.pushHeld = g.session.State() == StatePlaying &&
		rl.IsMouseButtonDown(rl.MouseButtonLeft) &&
		!overQuit

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.session.PointerReleased()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if cw, ch := g.camera.Viewport(); w == cw && h == ch {
		return
	}

	g.camera.Resize(w, h)
	if g.background != nil {
		g.background.Resize(float32(w), float32(h))
	}
	if g.perfPanel != nil {
		g.perfPanel.SetPosition(int32(w)-250, 60)
	}
}
