// Package game runs the galaxy universe, its play session and the window frontend.
package game

import (
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/camera"
	"github.com/pthm-cable/lambda/config"
	"github.com/pthm-cable/lambda/renderer"
	"github.com/pthm-cable/lambda/telemetry"
	"github.com/pthm-cable/lambda/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool // no raylib window; used by the terminal frontend too
	StepsPerUpdate int
	AutoPush       bool // scripted pusher for headless runs
	SkipIntro      bool
	Config         *config.Config // nil = global config
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	camera   *camera.Camera
	universe *Universe
	session  *Session
	pilot    *AutoPusher

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	milestones    *telemetry.MilestoneDetector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	eventHandler  func([]Event)
	logStats      bool

	seed           int64
	sessions       int
	stepsPerUpdate int
	headless       bool

	// Window frontend state
	paused    bool
	pushHeld  bool
	pointerX  float64
	pointerY  float64
	showPerf  bool
	hud       *ui.HUD
	menu      *ui.Menu
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel

	background *renderer.BackgroundRenderer
	galaxies   *renderer.GalaxyRenderer

	// Scratch buffers
	bodies    []BodyView
	diameters []float64
}

// NewCamera builds the ground camera from the config.
func NewCamera(cfg *config.Config) *camera.Camera {
	c := cfg.Camera
	return camera.New(
		r3.Vec{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]},
		r3.Vec{X: c.Target[0], Y: c.Target[1], Z: c.Target[2]},
		r3.Vec{X: c.Up[0], Y: c.Up[1], Z: c.Up[2]},
		c.FovY,
		cfg.Derived.ScreenW,
		cfg.Derived.ScreenH,
	)
}

// NewGameWithOptions creates a game on the title screen.
// config.Init must have been called unless opts.Config is set.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	cam := NewCamera(cfg)
	universe := NewUniverse(cfg, cam, rng)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		rng:            rng,
		camera:         cam,
		universe:       universe,
		session:        NewSession(universe),
		collector:      telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		milestones:     telemetry.NewMilestoneDetector(10, cfg.Universe.CollapseSize),
		logStats:       opts.LogStats,
		seed:           opts.Seed,
		stepsPerUpdate: steps,
		headless:       opts.Headless,
	}
	universe.SetPhaseTimer(g.perfCollector)

	if opts.AutoPush {
		g.pilot = NewAutoPusher(rand.New(rand.NewSource(opts.Seed + 1)))
	}
	if opts.SkipIntro {
		g.session.SkipIntro()
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.initWindowUI()
	}

	return g
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// SetEventHandler registers a function called with the events of every tick.
// The slice is only valid during the call.
func (g *Game) SetEventHandler(fn func([]Event)) {
	g.eventHandler = fn
}

// Start leaves the title screen.
func (g *Game) Start() {
	if !g.session.Start() {
		return
	}
	g.resetTelemetry()
	slog.Info("session started", "session", g.sessions+1, "state", g.session.State().String())
}

// Stop abandons the running game and returns to the title screen.
func (g *Game) Stop() {
	if g.session.State() == StatePlaying {
		g.recordSession(g.universe.Result(), false)
	}
	g.session.Stop()
}

// Step advances the game by one tick of dt seconds. It does nothing unless
// a game is being played.
func (g *Game) Step(dt float64, in Input) {
	if g.session.State() != StatePlaying {
		return
	}

	g.perfCollector.StartTick()
	g.universe.Update(dt, in)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordEvents()
	if g.eventHandler != nil {
		g.eventHandler(g.universe.Events())
	}
	if _, pushing := g.universe.Pusher(); pushing {
		g.collector.RecordPushTick()
	}
	if g.collector.ShouldFlush(g.universe.Tick()) {
		g.flushTelemetry()
	}
	g.perfCollector.EndTick()

	select {
	case res := <-g.universe.GameOver():
		g.recordSession(res, true)
		g.session.Finish(res)
	default:
	}
}

// UpdateHeadless runs the configured number of fixed-step ticks. The
// session is started automatically without the intro.
func (g *Game) UpdateHeadless() {
	if g.session.State() != StatePlaying {
		g.session.SkipIntro()
		g.session.Stop()
		g.Start()
	}
	dt := g.cfg.Physics.DT
	for i := 0; i < g.stepsPerUpdate; i++ {
		var in Input
		if g.pilot != nil {
			w, h := g.camera.Viewport()
			in = g.pilot.Next(dt, w, h)
		}
		g.Step(dt, in)
		if g.session.State() != StatePlaying {
			return
		}
	}
}

// recordEvents feeds the last tick's events to telemetry.
func (g *Game) recordEvents() {
	for _, ev := range g.universe.Events() {
		switch ev.Type {
		case EventSpawned:
			g.collector.RecordSpawn()
		case EventSpawnFailed:
			g.collector.RecordSpawnFailed()
			slog.Debug("spawn failed", "event", ev)
		case EventMerged:
			g.collector.RecordMerge()
			slog.Debug("merge", "event", ev)
		case EventPushStarted:
			g.collector.RecordPush()
		case EventGameOver:
			slog.Info("game over", "result", g.universe.Result())
		}
	}
}

// flushTelemetry closes the current stats window and checks for milestones.
func (g *Game) flushTelemetry() {
	u := g.universe
	g.diameters = u.Diameters(g.diameters[:0])

	stats := g.collector.Flush(u.Tick(), telemetry.Sample{
		Population:    u.Count(),
		MaxBodies:     u.MaxBodies(),
		Score:         u.Score(),
		Rate:          u.Rate(),
		MaxRate:       u.MaxRate(),
		TotalDiameter: u.TotalDiameter(),
		Diameters:     g.diameters,
	})
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.LogMilestone()
		}
		if err := g.outputManager.WriteMilestone(m); err != nil {
			slog.Error("failed to write milestone", "error", err)
		}
	}
}

func (g *Game) resetTelemetry() {
	g.collector.Reset()
	g.milestones.Reset()
}

// recordSession logs a finished or abandoned game.
func (g *Game) recordSession(res Result, completed bool) {
	g.sessions++
	slog.Info("session ended",
		"session", g.sessions,
		"completed", completed,
		"result", res,
	)
	err := g.outputManager.WriteSession(telemetry.SessionRecord{
		Session:       g.sessions,
		Seed:          g.seed,
		Score:         res.Score,
		MaxRate:       res.MaxRate,
		MaxBodies:     res.MaxBodies,
		FinalDiameter: res.FinalDiameter,
		Ticks:         res.Ticks,
		DurationSec:   res.Duration,
		Completed:     completed,
	})
	if err != nil {
		slog.Error("failed to write session", "error", err)
	}
}

// Unload records an unfinished game and closes output files.
func (g *Game) Unload() {
	if g.session.State() == StatePlaying {
		g.recordSession(g.universe.Result(), false)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Session returns the play session.
func (g *Game) Session() *Session { return g.session }

// Universe returns the universe.
func (g *Game) Universe() *Universe { return g.universe }

// Camera returns the ground camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// Tick returns the tick of the current game.
func (g *Game) Tick() int64 { return g.universe.Tick() }

// Sessions returns the number of games ended so far.
func (g *Game) Sessions() int { return g.sessions }

// Bodies returns a view of every galaxy. The slice is reused between calls.
func (g *Game) Bodies() []BodyView {
	g.bodies = g.universe.Bodies(g.bodies[:0])
	return g.bodies
}
