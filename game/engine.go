// Package game orchestrates the engine: it drains the frame mailbox, drives
// reconciliation, routes input to the interaction controller, and draws the
// scene, overlays, and UI.
package game

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/saagar210/OrbitForge/camera"
	"github.com/saagar210/OrbitForge/config"
	"github.com/saagar210/OrbitForge/effects"
	"github.com/saagar210/OrbitForge/interact"
	"github.com/saagar210/OrbitForge/mechanics"
	"github.com/saagar210/OrbitForge/renderer"
	"github.com/saagar210/OrbitForge/scene"
	"github.com/saagar210/OrbitForge/sim"
	"github.com/saagar210/OrbitForge/telemetry"
	"github.com/saagar210/OrbitForge/ui"
)

// Options configures the engine at startup.
type Options struct {
	Seed      int64
	Headless  bool
	LogStats  bool
	OutputDir string
	// Gravity is the constant the frame producer integrates with; field
	// overlays sample with the same value.
	Gravity float64
}

// Engine holds the complete visualization state.
type Engine struct {
	cfg  *config.Config
	opts Options

	mailbox    *sim.Latest
	collisions <-chan sim.CollisionEvent
	sink       sim.CommandSink

	rec       *scene.Reconciler
	particles *effects.ParticlePool
	flashes   *effects.FlashPool

	cam        *camera.Orbit
	controller *interact.Controller

	bodies      *renderer.BodyRenderer
	overlayDraw *renderer.OverlayRenderer
	capture     *renderer.Capture

	overlays *ui.OverlayRegistry
	panel    *ui.ControlPanel
	hud      *ui.HUD

	perf      *telemetry.PerfCollector
	window    *telemetry.ReconcileWindow
	output    *telemetry.OutputManager
	lastFlush time.Time

	// Latest reconciled frame; zero until the first fresh frame arrives.
	frame     sim.Frame
	haveFrame bool

	selectedID   uint32
	hasSelection bool
	following    bool

	// Prediction path, replaced only by non-empty refreshes. Written from
	// the producer goroutine, read by the render loop.
	predMu     sync.Mutex
	prediction []r3.Vec
	predFor    uint32

	// Planned transfer arc, toggled from the keyboard for the selection.
	transferPlan *mechanics.Transfer

	rng *rand.Rand
}

// NewEngine wires the engine against a frame mailbox, collision stream, and
// command sink.
func NewEngine(opts Options, mailbox *sim.Latest, collisions <-chan sim.CollisionEvent, sink sim.CommandSink) *Engine {
	cfg := config.Cfg()

	e := &Engine{
		cfg:        cfg,
		opts:       opts,
		mailbox:    mailbox,
		collisions: collisions,
		sink:       sink,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		rec: scene.NewReconciler(scene.Config{
			SmallBodyMass: cfg.Scene.SmallBodyMass,
			BatchCapacity: cfg.Scene.BatchCapacity,
			TrailPoolSize: cfg.Scene.TrailPoolSize,
		}),
		cam:         camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height)),
		bodies:      renderer.NewBodyRenderer(),
		overlayDraw: renderer.NewOverlayRenderer(),
		capture:     renderer.NewCapture(cfg.Capture.Dir, cfg.Capture.FrameStride),
		overlays:    ui.NewOverlayRegistry(),
		panel:       ui.NewControlPanel(int32(cfg.Screen.Width)-panelWidth-10, 10, panelWidth),
		hud:         ui.NewHUD(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		window:      telemetry.NewReconcileWindow(),
		lastFlush:   time.Now(),
	}

	// Until the first frame arrives the HUD and speed keys see sane defaults.
	e.frame.SpeedMult = 1

	e.particles = effects.NewParticlePool(cfg.Effects.ParticlePoolSize, e.rng)
	e.flashes = effects.NewFlashPool(cfg.Effects.FlashPoolSize)

	e.controller = interact.NewController(interact.Config{
		ImpulseScale:   cfg.Interact.ImpulseScale,
		PlacementPlane: interact.Plane{Normal: r3.Vec{Y: 1}},
		DefaultPreset: interact.Preset{
			Mass:   cfg.Interact.PlaceMass,
			Radius: cfg.Interact.PlaceRadius,
			Color:  sim.Color{R: 120, G: 180, B: 120, A: 255},
			Name:   "New Body",
			Kind:   sim.KindPlanet,
		},
		CraftPreset: interact.Preset{
			Mass:   cfg.Interact.CraftMass,
			Radius: cfg.Interact.CraftRadius,
			Color:  sim.Color{R: 220, G: 220, B: 240, A: 255},
			Name:   "Craft",
			Fuel:   cfg.Interact.CraftFuel,
			Kind:   sim.KindCraft,
		},
	}, sink)
	e.controller.OnSelect(e.onSelect)

	// Startup overlay states from config.
	ov := cfg.Overlays
	for _, pair := range []struct {
		id ui.OverlayID
		on bool
	}{
		{ui.OverlayLabels, ov.Labels},
		{ui.OverlayVectors, ov.Vectors},
		{ui.OverlayBarycenter, ov.Barycenter},
		{ui.OverlayElements, ov.OrbitalElements},
		{ui.OverlayLagrange, ov.Lagrange},
		{ui.OverlaySweptArea, ov.SweptArea},
		{ui.OverlayGravityField, ov.GravityField},
		{ui.OverlayOrbitalPlanes, ov.OrbitalPlanes},
		{ui.OverlayCometTails, ov.CometTails},
		{ui.OverlayPrediction, ov.Prediction},
	} {
		e.overlays.SetEnabled(pair.id, pair.on)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("telemetry output disabled", "error", err)
		} else {
			e.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Warn("failed to snapshot config", "error", err)
			}
		}
	}

	return e
}

const panelWidth = int32(260)

// onSelect handles a select-mode click result.
func (e *Engine) onSelect(id uint32, ok bool) {
	e.selectedID = id
	e.hasSelection = ok
	e.bodies.SetSelection(id, ok)
	if !ok {
		e.following = false
		e.transferPlan = nil
		return
	}
	e.sink.RequestPrediction(id, e.cfg.Interact.PredictionSteps)
}

// SetPrediction installs a freshly computed trajectory for a body. An empty
// path is ignored so a failed refresh keeps the previous one visible.
// Safe to call from the producer goroutine.
func (e *Engine) SetPrediction(id uint32, path []r3.Vec) {
	if len(path) == 0 {
		return
	}
	e.predMu.Lock()
	e.prediction = path
	e.predFor = id
	e.predMu.Unlock()
}

// predictionPath returns the current path if it belongs to the selected body.
func (e *Engine) predictionPath() []r3.Vec {
	e.predMu.Lock()
	defer e.predMu.Unlock()
	if !e.hasSelection || e.predFor != e.selectedID {
		return nil
	}
	return e.prediction
}

// Follow centers the camera on a body and keeps tracking it.
func (e *Engine) Follow(id uint32) {
	e.selectedID = id
	e.hasSelection = true
	e.following = true
}

// SelectedBody returns the selected body from the latest frame, or nil.
func (e *Engine) SelectedBody() *sim.Body {
	if !e.hasSelection || !e.haveFrame {
		return nil
	}
	return e.frame.Find(e.selectedID)
}

// Reconciler exposes the scene for diagnostics.
func (e *Engine) Reconciler() *scene.Reconciler { return e.rec }

// Tick returns the tick of the latest reconciled frame.
func (e *Engine) Tick() uint64 { return e.frame.Tick }

// Unload releases engine resources.
func (e *Engine) Unload() {
	if e.output != nil {
		if err := e.output.Close(); err != nil {
			slog.Warn("closing telemetry output", "error", err)
		}
	}
}
