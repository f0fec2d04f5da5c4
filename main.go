package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/saagar210/OrbitForge/config"
	"github.com/saagar210/OrbitForge/game"
	"github.com/saagar210/OrbitForge/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run reconciliation without graphics")
	logStats := flag.Bool("log-stats", false, "Output reconcile/perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	scenario := flag.String("scenario", "", "Startup scenario (overrides config): sun_earth or procedural")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N loop frames (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Scenario.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Reference frame producer; the engine itself only sees the Source and
	// CommandSink interfaces.
	src := sim.NewLocalSource()
	loadScenario(src, cfg, *scenario, rngSeed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go src.Run(ctx, time.Duration(float64(time.Second)*cfg.Derived.FrameDT))

	// Last-value-wins mailbox between the producer and the render loop.
	mailbox := &sim.Latest{}
	go func() {
		for frame := range src.Frames() {
			mailbox.Publish(frame)
		}
	}()

	// The flag wins; otherwise CSV output follows the telemetry config.
	outDir := *outputDir
	if outDir == "" && cfg.Telemetry.Enabled {
		outDir = cfg.Telemetry.OutputDir
	}

	opts := game.Options{
		Seed:      rngSeed,
		Headless:  *headless,
		LogStats:  *logStats,
		OutputDir: outDir,
		Gravity:   src.Gravity(),
	}

	slog.Info("starting",
		"scenario", cfg.Scenario.Name,
		"seed", rngSeed,
		"headless", *headless,
	)

	if *headless {
		engine := game.NewEngine(opts, mailbox, src.Collisions(), src)
		defer engine.Unload()
		src.OnPrediction(engine.SetPrediction)

		for frames := 0; ; frames++ {
			engine.UpdateHeadless()
			if *maxFrames > 0 && frames >= *maxFrames {
				slog.Info("max frames reached", "tick", engine.Tick())
				return
			}
		}
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "OrbitForge")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	engine := game.NewEngine(opts, mailbox, src.Collisions(), src)
	defer engine.Unload()
	src.OnPrediction(engine.SetPrediction)

	frames := 0
	for !rl.WindowShouldClose() {
		engine.Update()
		engine.Draw()

		frames++
		if *maxFrames > 0 && frames >= *maxFrames {
			break
		}
	}
}

// loadScenario populates the local source with startup content.
func loadScenario(src *sim.LocalSource, cfg *config.Config, override string, seed int64) {
	name := cfg.Scenario.Name
	if override != "" {
		name = override
	}

	switch name {
	case "procedural":
		rng := rand.New(rand.NewSource(seed))
		src.GenerateSystem(rng, cfg.Scenario.StarMass, cfg.Scenario.PlanetCount,
			cfg.Scenario.MinSpacing, cfg.Scenario.MaxRadius)
	default:
		src.LoadSunEarth()
	}
}
