package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Title is the game title shown on the title screen.
const Title = "LAMBDA"

// MenuAction is a button the player pressed this frame.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuStart
	MenuQuit
)

// Menu draws the title screen, the intro pages and the in-game quit button.
type Menu struct {
	renderer *Renderer
}

// NewMenu creates a new menu renderer.
func NewMenu() *Menu {
	return &Menu{renderer: NewRenderer()}
}

// DrawTitle draws the title and the start button. lastScore is shown when
// a game has been finished.
func (m *Menu) DrawTitle(screenW, screenH int32, lastScore string) MenuAction {
	t := m.renderer.Theme
	cx := screenW / 2

	m.renderer.DrawTextCentered(Title, cx, screenH/3, t.TitleFontSize, t.TitleColor)
	if lastScore != "" {
		m.renderer.DrawTextCentered(fmt.Sprintf("Last universe: %s", lastScore), cx, screenH/3+t.TitleFontSize+16, t.StoryFontSize, t.StoryColor)
	}

	bounds := rl.Rectangle{X: float32(cx) - 80, Y: float32(screenH) * 0.6, Width: 160, Height: 40}
	if gui.Button(bounds, "Start") {
		return MenuStart
	}
	return MenuNone
}

// DrawIntro draws one intro page and the hint to continue.
func (m *Menu) DrawIntro(screenW, screenH int32, text string) {
	t := m.renderer.Theme
	m.renderer.DrawTextCentered(text, screenW/2, screenH/2-t.StoryFontSize, t.StoryFontSize, t.StoryColor)
	m.renderer.DrawTextCentered("click to continue", screenW/2, screenH-60, t.FontSize+2, t.LabelColor)
}

// QuitBounds returns the area of the in-game quit button.
func (m *Menu) QuitBounds(screenW int32) rl.Rectangle {
	return rl.Rectangle{X: float32(screenW) - 110, Y: 10, Width: 100, Height: 30}
}

// DrawQuit draws the in-game quit button.
func (m *Menu) DrawQuit(screenW int32) MenuAction {
	if gui.Button(m.QuitBounds(screenW), "Quit") {
		return MenuQuit
	}
	return MenuNone
}
