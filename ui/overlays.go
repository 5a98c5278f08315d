package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Board overlays.
const (
	OverlaySeekerHeat OverlayID = "seeker_heat"
	OverlayHiderHeat  OverlayID = "hider_heat"
	OverlayVision     OverlayID = "vision"
	OverlayGoals      OverlayID = "goals"
	OverlayFlareArea  OverlayID = "flare_area"
	OverlayGridLines  OverlayID = "grid_lines"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID   // Unique identifier
	Name      string      // Display name
	Key       int32       // Keyboard key to toggle (0 = no key)
	KeyLabel  string      // Key label for display (e.g., "S", "V")
	Exclusive []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the board overlays. The
// seeker heat layer and grid lines start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.SetEnabled(OverlaySeekerHeat, true)
	reg.SetEnabled(OverlayGridLines, true)
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:        OverlaySeekerHeat,
		Name:      "Seeker Heat",
		Key:       rl.KeyH,
		KeyLabel:  "H",
		Exclusive: []OverlayID{OverlayHiderHeat},
	})
	r.Register(OverlayDescriptor{
		ID:        OverlayHiderHeat,
		Name:      "Hider Heat",
		Key:       rl.KeyJ,
		KeyLabel:  "J",
		Exclusive: []OverlayID{OverlaySeekerHeat},
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayVision,
		Name:     "Seeker Vision",
		Key:      rl.KeyV,
		KeyLabel: "V",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayGoals,
		Name:     "Goals",
		Key:      rl.KeyG,
		KeyLabel: "G",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayFlareArea,
		Name:     "Flare Area",
		Key:      rl.KeyF,
		KeyLabel: "F",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayGridLines,
		Name:     "Grid Lines",
		Key:      rl.KeyL,
		KeyLabel: "L",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
