// Package ui provides the overlay registry, control panel, and HUD.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayLabels        OverlayID = "labels"
	OverlayVectors       OverlayID = "vectors"
	OverlayBarycenter    OverlayID = "barycenter"
	OverlayElements      OverlayID = "orbital_elements"
	OverlayLagrange      OverlayID = "lagrange"
	OverlaySweptArea     OverlayID = "swept_area"
	OverlayGravityField  OverlayID = "gravity_field"
	OverlayOrbitalPlanes OverlayID = "orbital_planes"
	OverlayCometTails    OverlayID = "comet_tails"
	OverlayPrediction    OverlayID = "prediction"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Keyboard key to toggle (0 = no key)
	KeyLabel string // Key label for display
	Category string // Grouping for the panel
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	// Annotation overlays
	r.Register(OverlayDescriptor{ID: OverlayLabels, Name: "Body Labels", Key: rl.KeyL, KeyLabel: "L", Category: "annotation"})
	r.Register(OverlayDescriptor{ID: OverlayVectors, Name: "Velocity/Accel Vectors", Key: rl.KeyV, KeyLabel: "V", Category: "annotation"})
	r.Register(OverlayDescriptor{ID: OverlayCometTails, Name: "Comet Tails", Key: rl.KeyT, KeyLabel: "T", Category: "annotation"})

	// Analysis overlays
	r.Register(OverlayDescriptor{ID: OverlayBarycenter, Name: "Barycenter Marker", Key: rl.KeyB, KeyLabel: "B", Category: "analysis"})
	r.Register(OverlayDescriptor{ID: OverlayElements, Name: "Orbital Elements", Key: rl.KeyE, KeyLabel: "E", Category: "analysis"})
	r.Register(OverlayDescriptor{ID: OverlayLagrange, Name: "Lagrange Points", Key: rl.KeyG, KeyLabel: "G", Category: "analysis"})
	r.Register(OverlayDescriptor{ID: OverlaySweptArea, Name: "Swept Area", Key: rl.KeyA, KeyLabel: "A", Category: "analysis"})
	r.Register(OverlayDescriptor{ID: OverlayPrediction, Name: "Predicted Path", Key: rl.KeyP, KeyLabel: "P", Category: "analysis"})

	// Field overlays
	r.Register(OverlayDescriptor{ID: OverlayGravityField, Name: "Gravity Heatmap", Key: rl.KeyF, KeyLabel: "F", Category: "field"})
	r.Register(OverlayDescriptor{ID: OverlayOrbitalPlanes, Name: "Orbital Planes", Key: rl.KeyO, KeyLabel: "O", Category: "field"})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	r.enabled[id] = enabled
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// EnabledOverlays returns the currently enabled overlay IDs in order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, id := range r.order {
		if r.enabled[id] {
			result = append(result, id)
		}
	}
	return result
}
