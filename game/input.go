package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/saagar210/OrbitForge/interact"
)

// Camera input tuning.
const (
	rotateSensitivity = 0.005
	panSensitivity    = 0.6
	zoomStep          = 0.9
)

// handleInput processes keyboard and mouse input for this frame.
func (e *Engine) handleInput() {
	// Mode keys
	if rl.IsKeyPressed(rl.KeyOne) {
		e.controller.SetMode(interact.ModeSelect)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		e.controller.SetMode(interact.ModePlace)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		e.controller.SetMode(interact.ModeSlingshot)
	}

	// Time controls
	if rl.IsKeyPressed(rl.KeySpace) {
		e.sink.SetPaused(!e.frame.Paused)
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		e.sink.SetSpeed(clampSpeed(e.frame.SpeedMult / 2))
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		e.sink.SetSpeed(clampSpeed(e.frame.SpeedMult * 2))
	}

	// Follow the selected body
	if rl.IsKeyPressed(rl.KeyC) && e.hasSelection {
		if e.following {
			e.following = false
		} else {
			e.Follow(e.selectedID)
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		e.panel.Toggle()
	}

	// Plan (or clear) a transfer from the selection to the next outer orbit
	if rl.IsKeyPressed(rl.KeyH) {
		if e.transferPlan != nil {
			e.transferPlan = nil
		} else {
			e.planTransfer()
		}
	}

	// Overlay toggle keys
	for _, desc := range e.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			e.overlays.Toggle(desc.ID)
		}
	}

	if rl.IsKeyPressed(rl.KeyF12) {
		e.Screenshot(e.cfg.Capture.ScreenshotMult)
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		if e.capture.Recording() {
			e.StopRecording()
		} else {
			e.StartRecording()
		}
	}

	e.handlePointer()
	e.handleCamera()
}

// handlePointer forwards mouse events to the interaction controller, unless
// the cursor is over the control panel.
func (e *Engine) handlePointer() {
	mouse := rl.GetMousePosition()
	if e.panel.IsVisible() && mouse.X >= float32(int32(e.cfg.Screen.Width)-panelWidth-10) {
		return
	}

	ray := e.screenRay(mouse.X, mouse.Y)
	modifier := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		e.controller.PointerDown(ray, e.rec.View(), modifier)
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		e.controller.PointerMove(ray)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		e.controller.PointerUp(ray)
	}
}

// handleCamera applies orbit-camera input. Suspended while a slingshot drag
// holds the pointer.
func (e *Engine) handleCamera() {
	if e.controller.CameraLocked() {
		return
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		e.cam.Rotate(float64(delta.X)*rotateSensitivity, float64(delta.Y)*rotateSensitivity)
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		e.cam.Pan(-float64(delta.X)*panSensitivity, float64(delta.Y)*panSensitivity)
		e.following = false
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		e.cam.ZoomBy(math.Pow(zoomStep, float64(wheel)))
	}
}

// screenRay builds a world-space picking ray through a screen pixel.
func (e *Engine) screenRay(px, py float32) interact.Ray {
	origin, dir := e.cam.ScreenRay(float64(px), float64(py))
	return interact.Ray{Origin: origin, Dir: dir}
}

// clampSpeed bounds the speed multiplier to the supported range.
func clampSpeed(mult float64) float64 {
	if mult < 0.25 {
		return 0.25
	}
	if mult > 8 {
		return 8
	}
	return mult
}

// Screenshot captures a supersampled still of the current scene.
func (e *Engine) Screenshot(mult int) {
	path, err := e.capture.Screenshot(int32(e.cfg.Screen.Width), int32(e.cfg.Screen.Height), mult, e.drawWorld)
	if err != nil {
		slog.Warn("screenshot failed", "error", err)
		return
	}
	slog.Info("screenshot saved", "path", path)
}

// StartRecording begins per-frame PNG capture.
func (e *Engine) StartRecording() {
	if err := e.capture.StartRecording(); err != nil {
		slog.Warn("recording failed to start", "error", err)
		return
	}
	slog.Info("recording started", "stride", e.cfg.Capture.FrameStride)
}

// StopRecording ends the capture sequence.
func (e *Engine) StopRecording() {
	frames := e.capture.StopRecording()
	slog.Info("recording stopped", "frames", frames)
}
