package components

import (
	cfg "github.com/automoto/tilerunner/config"
	"github.com/yohamta/donburi"
)

type StateData struct {
	Current  cfg.StateID
	Previous cfg.StateID

	// Timer counts down per-state durations (hit stun, death linger).
	Timer int
}

var State = donburi.NewComponentType[StateData]()

// Enter switches to a new state, remembering the previous one. No-op when
// already in the target state so timers are not restarted.
func (s *StateData) Enter(next cfg.StateID, timer int) {
	if s.Current == next {
		return
	}
	s.Previous = s.Current
	s.Current = next
	s.Timer = timer
}
