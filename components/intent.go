package components

import "github.com/yohamta/donburi"

// Intent is a normalized per-tick description of requested entity actions,
// decoupled from raw input devices. It is a plain value so recordings can
// serialize it directly.
type Intent struct {
	MoveX float64 `json:"moveX"` // -1, 0 or 1
	Jump  bool    `json:"jump,omitempty"`
	Dash  bool    `json:"dash,omitempty"`
	Fire  bool    `json:"fire,omitempty"`
}

// IntentData holds the intent the simulation will consume on the next step.
// Jump/Dash/Fire are one-shot: the physics step clears them in finalize.
type IntentData struct {
	Current Intent
}

var IntentComponent = donburi.NewComponentType[IntentData]()
