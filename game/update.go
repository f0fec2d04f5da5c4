package game

import (
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/saagar210/OrbitForge/sim"
	"github.com/saagar210/OrbitForge/telemetry"
)

// impactColor seeds the debris color jitter for collision bursts.
var impactColor = sim.Color{R: 255, G: 200, B: 120, A: 255}

// Update advances the engine by one loop frame: input, frame intake,
// reconciliation, effects, and telemetry.
func (e *Engine) Update() {
	e.perf.StartFrame()

	e.handleInput()

	e.perf.StartPhase(telemetry.PhaseFrameTake)
	e.takeFrame()
	e.drainCollisions()

	dt := float64(rl.GetFrameTime())
	e.stepEffects(dt)
}

// UpdateHeadless is the no-graphics variant used for soak runs: it reconciles
// frames and ticks effect pools on a nominal frame delta.
func (e *Engine) UpdateHeadless() {
	e.perf.StartFrame()
	e.takeFrame()
	e.drainCollisions()
	e.stepEffects(e.cfg.Derived.FrameDT)
	e.finishFrame()
	time.Sleep(time.Duration(e.cfg.Derived.FrameDT * float64(time.Second)))
}

// takeFrame drains the mailbox and reconciles if a fresh frame arrived.
func (e *Engine) takeFrame() {
	frame, fresh := e.mailbox.Take()
	if !fresh {
		e.window.RecordStale()
		return
	}

	e.perf.StartPhase(telemetry.PhaseReconcile)
	e.rec.Sync(&frame)
	e.frame = frame
	e.haveFrame = true
	e.window.RecordSync(frame.Tick, e.rec.Stats(), e.rec.TrackedCount())

	// A body can vanish mid-drag (absorbed in a collision).
	e.controller.Validate(e.rec.View())
	if e.hasSelection {
		if _, ok := e.rec.View()[e.selectedID]; !ok {
			e.onSelect(0, false)
		}
	}

	if e.following {
		if body := e.frame.Find(e.selectedID); body != nil {
			e.cam.Target = body.Position
		} else {
			e.following = false
		}
	}
}

// drainCollisions consumes pending collision events and spawns impact
// visuals scaled by the combined mass.
func (e *Engine) drainCollisions() {
	for {
		select {
		case ev, ok := <-e.collisions:
			if !ok {
				return
			}
			count := 6 + int(math.Log1p(ev.CombinedMass)*3)
			e.particles.Spawn(ev.Position, count, impactColor)
			e.flashes.Spawn(ev.Position, 2+math.Cbrt(ev.CombinedMass))
			slog.Debug("collision",
				"survivor", ev.SurvivorID,
				"absorbed", ev.AbsorbedID,
				"mass", ev.CombinedMass,
			)
		default:
			return
		}
	}
}

// stepEffects advances the particle and flash pools.
func (e *Engine) stepEffects(dt float64) {
	if dt <= 0 {
		return
	}
	e.particles.Tick(dt)
	e.flashes.Tick(dt)
}

// finishFrame closes perf timing for the loop frame and emits window
// summaries on the configured interval. In graphical mode the draw pass calls
// it; headless updates call it directly.
func (e *Engine) finishFrame() {
	e.perf.EndFrame()

	interval := e.cfg.Telemetry.FlushInterval
	if interval <= 0 || time.Since(e.lastFlush).Seconds() < interval {
		return
	}
	wall := time.Since(e.lastFlush).Seconds()
	e.lastFlush = time.Now()

	ws, ok := e.window.Flush(wall)
	if !ok {
		return
	}
	perfStats := e.perf.Stats()

	if e.opts.LogStats {
		slog.Info("reconcile", "window", ws)
		perfStats.LogStats()
	}
	if e.output != nil {
		if err := e.output.WriteReconcile(ws); err != nil {
			slog.Warn("writing reconcile stats", "error", err)
		}
		if err := e.output.WritePerf(perfStats, ws.WindowEndTick); err != nil {
			slog.Warn("writing perf stats", "error", err)
		}
	}
}
