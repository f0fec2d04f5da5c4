package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/saagar210/OrbitForge/renderer"
	"github.com/saagar210/OrbitForge/telemetry"
	"github.com/saagar210/OrbitForge/ui"
)

var backgroundColor = rl.Color{R: 4, G: 5, B: 10, A: 255}

// Draw renders one frame: the 3D scene, overlays, and UI.
func (e *Engine) Draw() {
	rl.BeginDrawing()

	e.perf.StartPhase(telemetry.PhaseDraw3D)
	e.drawWorld()

	e.perf.StartPhase(telemetry.PhaseDrawUI)
	e.drawUI()

	rl.EndDrawing()

	e.perf.StartPhase(telemetry.PhaseCapture)
	e.capture.Frame()

	e.finishFrame()
}

// drawWorld renders the full 3D pass. Also used as the screenshot draw
// callback, so it clears its own background.
func (e *Engine) drawWorld() {
	rl.ClearBackground(backgroundColor)

	cam := e.rlCamera()
	rl.BeginMode3D(cam)

	e.bodies.DrawTrails(e.rec)
	e.bodies.Draw(e.rec)
	e.bodies.DrawBatch(e.rec.Batch())

	renderer.DrawParticles(e.particles)
	renderer.DrawFlashes(e.flashes)

	e.drawOverlays3D()

	if ind := e.controller.Indicator(); ind.Active {
		renderer.DrawIndicator(ind.From, ind.To)
	}

	rl.EndMode3D()

	// Screen-space overlay passes need the camera for projection.
	e.drawOverlays2D(cam)
}

// drawUI renders the HUD and control panel and applies panel actions.
func (e *Engine) drawUI() {
	batched := 0
	if b := e.rec.Batch(); b != nil {
		batched = b.Count()
	}
	e.hud.DrawStatus(ui.HUDData{
		Tick:      e.frame.Tick,
		Paused:    e.frame.Paused,
		SpeedMult: e.frame.SpeedMult,
		BodyCount: len(e.frame.Bodies),
		Tracked:   e.rec.TrackedCount(),
		Batched:   batched,
		Energy:    e.frame.Energy,
		FPS:       int32(rl.GetFPS()),
	})
	e.hud.DrawModeHint(e.controller.Mode().String())
	e.hud.DrawSelection(e.SelectedBody())

	actions := e.panel.Draw(e.overlays, ui.PanelState{
		Paused:    e.frame.Paused,
		SpeedMult: e.frame.SpeedMult,
		Recording: e.capture.Recording(),
	})
	if actions.TogglePause {
		e.sink.SetPaused(!e.frame.Paused)
	}
	if actions.SpeedChanged {
		e.sink.SetSpeed(clampSpeed(actions.NewSpeed))
	}
	if actions.Screenshot {
		e.Screenshot(e.cfg.Capture.ScreenshotMult)
	}
	if actions.ToggleRecording {
		if e.capture.Recording() {
			e.StopRecording()
		} else {
			e.StartRecording()
		}
	}
}

// rlCamera converts the orbit camera into raylib's camera struct.
func (e *Engine) rlCamera() rl.Camera3D {
	pos := e.cam.Position()
	return rl.Camera3D{
		Position: rl.Vector3{X: float32(pos.X), Y: float32(pos.Y), Z: float32(pos.Z)},
		Target: rl.Vector3{
			X: float32(e.cam.Target.X),
			Y: float32(e.cam.Target.Y),
			Z: float32(e.cam.Target.Z),
		},
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(e.cam.FovY * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}
