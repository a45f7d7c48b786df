package systems

import "github.com/hajimehoshi/ebiten/v2"

// Device bindings live here rather than in the config package: config is
// imported by the headless simulation core, which must stay buildable
// without the client's graphics toolchain.

// ActionID identifies a logical input action, decoupled from raw devices.
type ActionID int

const (
	ActionLeft ActionID = iota
	ActionRight
	ActionJump
	ActionDash
	ActionFire

	ActionCount // must be last, used for array sizing
)

func (a ActionID) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionDash:
		return "dash"
	case ActionFire:
		return "fire"
	default:
		return "unknown"
	}
}

// InputBinding represents the key and button bindings for one action.
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps every action to its devices.
var Bindings map[ActionID]InputBinding

func init() {
	Bindings = map[ActionID]InputBinding{
		ActionLeft: {
			Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonLeftLeft,
			},
		},
		ActionRight: {
			Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonLeftRight,
			},
		},
		ActionJump: {
			Keys: []ebiten.Key{ebiten.KeyX, ebiten.KeyW, ebiten.KeySpace},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightBottom,
			},
		},
		ActionDash: {
			Keys: []ebiten.Key{ebiten.KeyC, ebiten.KeyShiftLeft},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightRight,
			},
		},
		ActionFire: {
			Keys: []ebiten.Key{ebiten.KeyZ},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{
				ebiten.StandardGamepadButtonRightLeft,
			},
		},
	}
}
