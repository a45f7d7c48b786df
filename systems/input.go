package systems

import (
	"github.com/automoto/tilerunner/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// InputSampler converts raw device state into per-tick input intents. It
// tracks the previous action state itself, so one-shot actions (jump, dash,
// fire) trigger on the press edge even when a single render frame runs
// several simulation ticks.
type InputSampler struct {
	prev [ActionCount]bool
}

// Sample polls the devices and returns the intent for the next simulation
// tick.
func (s *InputSampler) Sample() components.Intent {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var cur [ActionCount]bool
	for a := ActionID(0); a < ActionCount; a++ {
		cur[a] = actionPressed(a)
	}

	var it components.Intent
	if cur[ActionLeft] {
		it.MoveX--
	}
	if cur[ActionRight] {
		it.MoveX++
	}
	it.Jump = cur[ActionJump] && !s.prev[ActionJump]
	it.Dash = cur[ActionDash] && !s.prev[ActionDash]
	it.Fire = cur[ActionFire] && !s.prev[ActionFire]

	s.prev = cur
	return it
}

func actionPressed(a ActionID) bool {
	binding := Bindings[a]
	for _, key := range binding.Keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
				return true
			}
		}
	}
	return false
}
