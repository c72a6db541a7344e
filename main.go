package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lambda/audio"
	"github.com/pthm-cable/lambda/config"
	"github.com/pthm-cable/lambda/game"
	"github.com/pthm-cable/lambda/renderer"
	"github.com/pthm-cable/lambda/tui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Run in the terminal")
	autoPush := flag.Bool("autopush", true, "Scripted pusher in headless mode")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	skipIntro := flag.Bool("skip-intro", false, "Start playing without the intro pages")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging). The terminal
	// frontend owns stdout, so it logs to stderr.
	out := os.Stdout
	if *terminal {
		out = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless || *terminal,
		StepsPerUpdate: *stepsPerUpdate,
		AutoPush:       *headless && *autoPush,
		SkipIntro:      *skipIntro,
	}

	switch {
	case *headless:
		runHeadless(opts, *maxTicks)
	case *terminal:
		runTerminal(cfg, opts, *maxTicks)
	default:
		runWindow(cfg, opts, *maxTicks)
	}
}

// runHeadless plays one game and exits on game over or after maxTicks.
func runHeadless(opts game.Options, maxTicks int64) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"autopush", opts.AutoPush,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if g.Sessions() > 0 {
			return
		}
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

func runTerminal(cfg *config.Config, opts game.Options, maxTicks int64) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	player := newPlayer(cfg)
	defer player.Close()
	g.SetEventHandler(player.HandleEvents)

	app, err := tui.New(g, renderer.NewStarfield(opts.Seed, cfg.Screen.Stars/3), opts.StepsPerUpdate)
	if err != nil {
		slog.Error("failed to start terminal", "error", err)
		return
	}
	defer app.Close()

	app.Run(maxTicks)
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int64) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Lambda")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	player := newPlayer(cfg)
	defer player.Close()
	g.SetEventHandler(player.HandleEvents)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

// newPlayer starts audio. The game runs silently when audio fails.
func newPlayer(cfg *config.Config) *audio.Player {
	p, err := audio.NewPlayer(cfg.Audio)
	if err != nil {
		slog.Warn("audio disabled", "error", err)
		return nil
	}
	return p
}
