package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/lambda/game"
	"github.com/pthm-cable/lambda/renderer"
)

const (
	frameInterval = 16 * time.Millisecond
	maxFrameDT    = 1.0 / 20
)

// App runs a game in the terminal.
type App struct {
	screen tcell.Screen
	game   *game.Game
	stars  *renderer.Starfield
	view   Viewport

	pushHeld   bool
	pointerX   float64
	pointerY   float64
	paused     bool
	start      time.Time
	last       time.Time
	stepsPerUp int
}

// New initialises the terminal. The caller must call Close.
func New(g *game.Game, stars *renderer.Starfield, stepsPerUpdate int) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	a := &App{
		screen:     screen,
		game:       g,
		stars:      stars,
		stepsPerUp: max(stepsPerUpdate, 1),
	}
	a.resize()
	return a, nil
}

// Close restores the terminal.
func (a *App) Close() {
	a.screen.Fini()
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	w, h := a.game.Camera().Viewport()
	a.view = Viewport{Cols: cols, Rows: rows, W: w, H: h}
	a.screen.Sync()
}

// Run polls input and draws frames until the player quits or maxTicks
// ticks of one game have run (0 = no limit).
func (a *App) Run(maxTicks int64) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, events, done)

	a.start = time.Now()
	a.last = a.start
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			dt := min(now.Sub(a.last).Seconds(), maxFrameDT)
			a.last = now
			a.update(dt)
			a.draw(now.Sub(a.start).Seconds())
			if maxTicks > 0 && a.game.Tick() >= maxTicks {
				slog.Info("max ticks reached", "ticks", a.game.Tick())
				return
			}
		}
	}
}

type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents forwards events to out until the source is finalised or done
// is closed.
func pollEvents(src eventSource, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies one input event. It returns false to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	s := a.game.Session()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			if s.State() == game.StatePlaying {
				a.game.Stop()
				return true
			}
			return false
		case tcell.KeyEnter:
			switch s.State() {
			case game.StateTitle:
				a.game.Start()
			case game.StateIntro:
				s.PointerReleased()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.paused = !a.paused
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		a.pointerX, a.pointerY = a.view.CellToScreen(col, row)

		held := ev.Buttons()&tcell.Button1 != 0
		if a.pushHeld && !held {
			if s.State() == game.StateTitle {
				a.game.Start()
			} else {
				s.PointerReleased()
			}
		}
		a.pushHeld = held

	case *tcell.EventResize:
		a.resize()
	}
	return true
}

func (a *App) update(dt float64) {
	if a.paused || a.game.Session().State() != game.StatePlaying {
		return
	}
	in := game.Input{PushHeld: a.pushHeld, PointerX: a.pointerX, PointerY: a.pointerY}
	for i := 0; i < a.stepsPerUp; i++ {
		a.game.Step(dt, in)
	}
}
