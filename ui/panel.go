package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelState is the engine state the control panel reflects.
type PanelState struct {
	Paused    bool
	SpeedMult float64
	Recording bool
}

// PanelActions reports what the user did on the panel this frame.
type PanelActions struct {
	TogglePause     bool
	SpeedChanged    bool
	NewSpeed        float64
	Screenshot      bool
	ToggleRecording bool
}

// ControlPanel renders the right-side control panel with overlay toggles and
// time controls.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a control panel anchored at the given position.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility and returns the new state.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool { return c.visible }

// Draw renders the panel and returns the actions taken this frame.
func (c *ControlPanel) Draw(overlays *OverlayRegistry, state PanelState) PanelActions {
	var actions PanelActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	// Overlay rows plus title, speed slider, and two button rows.
	panelHeight := int32(totalItems)*(lineHeight+4) + padding*4 + lineHeight*2 + 40*3

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 6

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight + 2

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			label := desc.Name
			if desc.KeyLabel != "" {
				label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			}
			box := rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: 14, Height: 14}
			now := gui.CheckBox(box, label, enabled)
			if now != enabled {
				overlays.SetEnabled(desc.ID, now)
			}
			y += lineHeight + 4
		}
		y += 4
	}

	rl.DrawText("Time", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight + 2

	slider := rl.Rectangle{X: float32(c.x + padding + 30), Y: float32(y), Width: float32(c.width - padding*2 - 60), Height: 16}
	newSpeed := gui.SliderBar(slider, "0.25x", "8x", float32(state.SpeedMult), 0.25, 8)
	if float64(newSpeed) != state.SpeedMult {
		actions.SpeedChanged = true
		actions.NewSpeed = float64(newSpeed)
	}
	y += 24

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: 100, Height: 26}, pauseText) {
		actions.TogglePause = true
	}
	y += 32

	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: 100, Height: 26}, "Screenshot") {
		actions.Screenshot = true
	}
	recText := "Record"
	if state.Recording {
		recText = "Stop Rec"
	}
	if gui.Button(rl.Rectangle{X: float32(c.x + padding + 110), Y: float32(y), Width: 100, Height: 26}, recText) {
		actions.ToggleRecording = true
	}

	return actions
}

func categoryLabel(cat string) string {
	switch cat {
	case "annotation":
		return "Annotation"
	case "analysis":
		return "Analysis"
	case "field":
		return "Fields"
	default:
		return cat
	}
}
