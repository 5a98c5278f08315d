package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/hideseek/config"
	"github.com/pthm-cable/hideseek/game"
	"github.com/pthm-cable/hideseek/ui"
)

func main() {
	// CLI flags
	mapPath := flag.String("map", "", "Path to the map file (required)")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	gui := flag.Bool("gui", false, "Open the interactive viewer")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = play to the end)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	render := flag.Bool("render", false, "Print the board after every tick (headless)")
	showHeat := flag.Bool("heat", false, "With -render, also print the seeker's heatmap")
	logStats := flag.Bool("log-stats", false, "Output telemetry windows via slog")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if *logText {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	if *mapPath == "" {
		fmt.Fprintln(os.Stderr, "usage: hideseek -map <file> [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	layout, err := game.LoadMap(*mapPath)
	if err != nil {
		slog.Error("failed to load map", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(layout, cfg, game.Options{
		Seed:      rngSeed,
		MapName:   filepath.Base(*mapPath),
		OutputDir: *outputDir,
		LogStats:  *logStats,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	var res game.Result
	if *gui {
		res = runGUI(g, cfg, *maxTicks)
	} else {
		res = runHeadless(g, *maxTicks, *render, *showHeat)
	}

	if res.Err != nil {
		os.Exit(1)
	}
}

// runHeadless plays the game to the end, optionally printing every tick.
func runHeadless(g *game.Game, maxTicks int, render, showHeat bool) game.Result {
	if !render {
		return g.Run(maxTicks)
	}

	show := func() {
		if err := g.Render(os.Stdout); err != nil {
			slog.Error("render failed", "error", err)
		}
		if showHeat {
			if err := game.RenderHeat(os.Stdout, g.Seeker()); err != nil {
				slog.Error("render failed", "error", err)
			}
		}
		fmt.Println()
	}

	show()
	for g.Outcome() == game.Running {
		if maxTicks > 0 && g.Elapsed() >= maxTicks {
			break
		}
		if err := g.Tick(); err != nil {
			break
		}
		show()
	}
	return g.Finish()
}

// runGUI opens the viewer and blocks until the window is closed.
func runGUI(g *game.Game, cfg *config.Config, maxTicks int) game.Result {
	w, h := ui.WindowSize(g, cfg)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(w, h, "Hide and Seek")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v := ui.NewViewer(g, cfg)
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if maxTicks > 0 && g.Elapsed() >= maxTicks {
			break
		}
	}
	return g.Finish()
}
