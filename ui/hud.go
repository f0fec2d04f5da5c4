package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/saagar210/OrbitForge/mechanics"
	"github.com/saagar210/OrbitForge/sim"
)

// HUDData holds the per-frame status the HUD displays.
type HUDData struct {
	Tick      uint64
	Paused    bool
	SpeedMult float64
	BodyCount int
	Tracked   int
	Batched   int
	Energy    sim.EnergyData
	FPS       int32
}

// HUD draws the status line and the selected-body panel.
type HUD struct {
	renderer *Renderer
	screenW  int32
	screenH  int32
}

// NewHUD creates a HUD for the given screen size.
func NewHUD(screenW, screenH int32) *HUD {
	return &HUD{renderer: NewRenderer(), screenW: screenW, screenH: screenH}
}

// Resize updates the HUD layout for a new screen size.
func (h *HUD) Resize(screenW, screenH int32) {
	h.screenW = screenW
	h.screenH = screenH
}

// DrawStatus renders the top status line.
func (h *HUD) DrawStatus(data HUDData) {
	status := fmt.Sprintf("tick %d  bodies %d (%d drawn, %d batched)  E %.1f  %d fps",
		data.Tick, data.BodyCount, data.Tracked, data.Batched, data.Energy.Total, data.FPS)
	rl.DrawText(status, 10, 10, 14, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 30, 18, rl.Color{R: 255, G: 180, B: 60, A: 255})
	} else if data.SpeedMult != 1 {
		rl.DrawText(fmt.Sprintf("%.2gx", data.SpeedMult), 10, 30, 18, rl.Color{R: 120, G: 200, B: 255, A: 255})
	}
}

// DrawSelection renders the selected-body panel in the bottom-left corner.
func (h *HUD) DrawSelection(body *sim.Body) {
	if body == nil {
		return
	}

	r := h.renderer
	padding := r.Theme.Padding
	width := int32(240)
	height := int32(130)
	if body.Kind == sim.KindCraft {
		height += r.Theme.LineHeight*2 + 4
	}

	x := int32(10)
	y := h.screenH - height - 10
	r.DrawPanel(x, y, width, height)

	ty := y + padding
	rl.DrawText(body.Name, x+padding, ty, 16, rl.White)
	ty += r.Theme.LineHeight + 6

	ty = r.DrawLabelValue(x+padding, ty, "Kind", kindLabel(body.Kind))
	ty = r.DrawLabelValue(x+padding, ty, "Mass", fmt.Sprintf("%.3g", body.Mass))
	ty = r.DrawLabelValue(x+padding, ty, "Speed", fmt.Sprintf("%.2f", body.Speed()))
	ty = r.DrawLabelValue(x+padding, ty, "Radius", fmt.Sprintf("%.1f", body.Radius))

	if body.Kind == sim.KindCraft {
		ty = r.DrawRatioBar(x+padding, ty, "Fuel", body.Fuel, body.MaxFuel, width-padding*2)
		thrust := math.Sqrt(body.Thrust.X*body.Thrust.X + body.Thrust.Y*body.Thrust.Y + body.Thrust.Z*body.Thrust.Z)
		r.DrawLabelValue(x+padding, ty, "Thrust", fmt.Sprintf("%.2f", thrust))
	}
}

// DrawElements renders the orbital-elements readout for the selected body.
func (h *HUD) DrawElements(el mechanics.Elements, attractor string) {
	r := h.renderer
	padding := r.Theme.Padding
	width := int32(240)
	height := r.Theme.LineHeight*7 + padding*2 + 8

	x := h.screenW - width - 10
	y := h.screenH - height - 10
	r.DrawPanel(x, y, width, height)

	ty := y + padding
	rl.DrawText("Orbit around "+attractor, x+padding, ty, 14, r.Theme.SectionHeader)
	ty += r.Theme.LineHeight + 4

	ty = r.DrawLabelValue(x+padding, ty, "a", fmt.Sprintf("%.1f", el.SemiMajorAxis))
	ty = r.DrawLabelValue(x+padding, ty, "e", fmt.Sprintf("%.4f", el.Eccentricity))
	ty = r.DrawLabelValue(x+padding, ty, "incl", fmt.Sprintf("%.2f deg", el.Inclination*180/math.Pi))
	if math.IsInf(el.Period, 1) {
		ty = r.DrawLabelValue(x+padding, ty, "period", "unbound")
	} else {
		ty = r.DrawLabelValue(x+padding, ty, "period", fmt.Sprintf("%.1f", el.Period))
	}
	ty = r.DrawLabelValue(x+padding, ty, "apo", fmt.Sprintf("%.1f", el.Apoapsis))
	r.DrawLabelValue(x+padding, ty, "peri", fmt.Sprintf("%.1f", el.Periapsis))
}

// DrawModeHint renders the current interaction mode in the top-right corner.
func (h *HUD) DrawModeHint(mode string) {
	text := "mode: " + mode + "  [1 select / 2 place / 3 slingshot, TAB panel]"
	w := rl.MeasureText(text, 12)
	rl.DrawText(text, h.screenW-w-10, 10, 12, rl.Gray)
}

func kindLabel(k sim.Kind) string {
	switch k {
	case sim.KindStar:
		return "star"
	case sim.KindPlanet:
		return "planet"
	case sim.KindCraft:
		return "craft"
	default:
		return "unknown"
	}
}
