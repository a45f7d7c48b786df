package config

// StateID identifies an entity action state. The set is closed: every system
// that branches on it must handle all values exhaustively, so adding a state
// means visiting every switch.
type StateID uint8

const (
	StateNone StateID = iota

	StateIdle
	StateRun
	StateJump
	StateFall
	StateWallSlide
	StateDash
	StateHit
	StateDead

	StateCount
)

var stateNames = map[StateID]string{
	StateNone:      "none",
	StateIdle:      "idle",
	StateRun:       "run",
	StateJump:      "jump",
	StateFall:      "fall",
	StateWallSlide: "wall_slide",
	StateDash:      "dash",
	StateHit:       "hit",
	StateDead:      "dead",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s names a real state (for validating decoded data).
func (s StateID) Valid() bool {
	return s > StateNone && s < StateCount
}
