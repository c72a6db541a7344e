package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer clears the screen to a base colour and draws a
// twinkling starfield over it.
type BackgroundRenderer struct {
	stars *Starfield

	screenW, screenH float32
	baseColor        rl.Color
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, seed int64, count int, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		stars:     NewStarfield(seed, count),
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		baseColor: rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
	}
}

// Resize updates the screen dimensions.
func (b *BackgroundRenderer) Resize(w, h float32) {
	b.screenW = w
	b.screenH = h
}

// Draw renders the background at time seconds.
func (b *BackgroundRenderer) Draw(time float32) {
	rl.ClearBackground(b.baseColor)

	for i, st := range b.stars.Stars() {
		a := b.stars.Brightness(i, float64(time))
		c := rl.Color{R: 220, G: 225, B: 255, A: uint8(a * 255)}
		rl.DrawCircleV(rl.Vector2{X: float32(st.X) * b.screenW, Y: float32(st.Y) * b.screenH}, float32(st.Size)*0.6, c)
	}
}
