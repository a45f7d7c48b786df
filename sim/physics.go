package sim

import (
	"log"

	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/yohamta/donburi"
)

// Per-tick integration runs the same sub-steps in the same order for every
// entity kind:
//
//	1. begin            — reset contacts, advance per-state timers
//	2. compute          — intended displacement from velocity + input intent
//	3. apply horizontal — then vertical; the vertical pass derives grounded
//	4. apply gravity    — clamped to max fall speed, cancelled on contact
//	5. update state     — facing and action state from the results
//	6. finalize         — friction, clear one-shot intents
//
// Ghost playback re-runs entities through this exact sequence, so the order
// is load-bearing: reordering sub-steps changes bit-level trajectories.

// beginStep resets contact flags and resolves the degenerate fully-embedded
// case (an entity spawned or restored inside solid geometry).
func (s *Simulation) beginStep(e *donburi.Entry) {
	ph := components.Physics.Get(e)
	obj := components.Object.Get(e)

	ph.Contacts = components.Contacts{}

	if overlapsSolid(s.grid, obj.X, obj.Y, obj.W, obj.H) {
		nx, ny, ejected := ejectFromSolid(s.grid, obj.X, obj.Y, obj.W, obj.H)
		if ejected {
			log.Printf("Warning: entity embedded in solid at (%.1f, %.1f), ejected to (%.1f, %.1f)",
				obj.X, obj.Y, nx, ny)
			obj.X, obj.Y = nx, ny
			obj.Update()
		}
	}
}

// applyHorizontal resolves the horizontal displacement against the grid.
func (s *Simulation) applyHorizontal(e *donburi.Entry, dx float64) {
	ph := components.Physics.Get(e)
	obj := components.Object.Get(e)

	nx, blocked := resolveHorizontal(s.grid, obj.X, obj.Y, obj.W, obj.H, dx)
	obj.X = nx
	if blocked {
		if dx > 0 {
			ph.Contacts.Right = true
		} else {
			ph.Contacts.Left = true
		}
		ph.Velocity.X = 0
	}
	obj.Update()
}

// applyVertical resolves the vertical displacement and derives the grounded
// flag: blocked-down this tick, or the one-pixel probe while at vertical
// rest. A descending body is airborne until the clamp lands it, so grounding,
// velocity zeroing, and the flush position all happen on the same tick.
func (s *Simulation) applyVertical(e *donburi.Entry, dy float64) {
	ph := components.Physics.Get(e)
	obj := components.Object.Get(e)

	ny, blocked := resolveVertical(s.grid, obj.X, obj.Y, obj.W, obj.H, dy)
	obj.Y = ny
	if blocked {
		if dy > 0 {
			ph.Contacts.Down = true
		} else {
			ph.Contacts.Up = true
		}
		ph.Velocity.Y = 0
	}
	ph.Grounded = ph.Contacts.Down ||
		(dy == 0 && groundContact(s.grid, obj.X, obj.Y, obj.W, obj.H))
	obj.Update()
}

// applyGravity accelerates downward, clamped to the max fall speed. Vertical
// velocity is cancelled on floor or ceiling contact from this tick, so a
// landing tick ends with exactly zero vertical velocity.
func (s *Simulation) applyGravity(e *donburi.Entry) {
	ph := components.Physics.Get(e)

	ph.Velocity.Y += cfg.Physics.Gravity
	if ph.Velocity.Y > cfg.Physics.MaxFallSpeed {
		ph.Velocity.Y = cfg.Physics.MaxFallSpeed
	}
	if ph.Contacts.Down || ph.Contacts.Up {
		ph.Velocity.Y = 0
	}
}

// stepPlayer runs one full tick for a player entity.
func (s *Simulation) stepPlayer(e *donburi.Entry) {
	st := components.State.Get(e)
	if st.Current == cfg.StateDead {
		return
	}

	p := components.Player.Get(e)
	ph := components.Physics.Get(e)
	in := components.IntentComponent.Get(e)
	it := in.Current

	// Hit stun suppresses all control.
	if st.Current == cfg.StateHit && st.Timer > 0 {
		it = components.Intent{}
	}

	// 1. begin
	s.beginStep(e)
	if st.Timer > 0 {
		st.Timer--
	}
	if p.ShootCooldown > 0 {
		p.ShootCooldown--
	}
	if p.Dashing > 0 {
		p.Dashing--
	}
	if p.Dashing < 0 {
		p.Dashing++
	}

	// 2. compute intended displacement (jump/dash impulses land here)
	dx, dy := s.computePlayerDisplacement(e, it)

	// 3. horizontal, then vertical
	s.applyHorizontal(e, dx)
	s.applyVertical(e, dy)

	// 4. gravity
	s.applyGravity(e)

	// 5. orientation and action state
	s.updatePlayerState(e, it)

	// 6. finalize
	if ph.Velocity.X > cfg.Player.Friction {
		ph.Velocity.X -= cfg.Player.Friction
	} else if ph.Velocity.X < -cfg.Player.Friction {
		ph.Velocity.X += cfg.Player.Friction
	} else {
		ph.Velocity.X = 0
	}
	ph.LastMoveX = it.MoveX
	in.Current.Jump = false
	in.Current.Dash = false
	in.Current.Fire = false

	if it.Fire {
		s.firePlayerProjectile(e)
	}
}

// computePlayerDisplacement applies jump and dash impulses, then combines
// input movement with residual velocity into this tick's displacement.
func (s *Simulation) computePlayerDisplacement(e *donburi.Entry, it components.Intent) (dx, dy float64) {
	p := components.Player.Get(e)
	ph := components.Physics.Get(e)

	if it.Jump {
		s.tryJump(e)
	}
	if it.Dash && p.Dashing == 0 {
		if ph.FacingLeft {
			p.Dashing = -cfg.Player.DashDuration
		} else {
			p.Dashing = cfg.Player.DashDuration
		}
	}

	// Active dash overrides horizontal velocity outright; at the decel
	// trigger the speed collapses, producing the abrupt stop.
	if abs(p.Dashing) > cfg.Player.DashActiveMin {
		ph.Velocity.X = float64(sign(p.Dashing)) * cfg.Player.DashSpeed
		if abs(p.Dashing) == cfg.Player.DashDecelTrigger {
			ph.Velocity.X *= cfg.Player.DashDecelFactor
		}
	}

	dx = it.MoveX*cfg.Player.RunSpeed + ph.Velocity.X
	dy = ph.Velocity.Y
	return dx, dy
}

// tryJump performs a ground jump or a wall jump. Wall jumps require pushing
// into the wall on the previous tick.
func (s *Simulation) tryJump(e *donburi.Entry) {
	p := components.Player.Get(e)
	ph := components.Physics.Get(e)

	if p.WallSlide {
		if ph.FacingLeft && ph.LastMoveX < 0 {
			ph.Velocity.X = cfg.Player.WallJumpVelocityX
			ph.Velocity.Y = cfg.Player.WallJumpVelocityY
			p.AirTime = cfg.Player.WallContactMinAir + 1
			if p.Jumps > 0 {
				p.Jumps--
			}
			return
		}
		if !ph.FacingLeft && ph.LastMoveX > 0 {
			ph.Velocity.X = -cfg.Player.WallJumpVelocityX
			ph.Velocity.Y = cfg.Player.WallJumpVelocityY
			p.AirTime = cfg.Player.WallContactMinAir + 1
			if p.Jumps > 0 {
				p.Jumps--
			}
			return
		}
		return
	}

	if p.Jumps > 0 {
		ph.Velocity.Y = cfg.Player.JumpVelocity
		p.Jumps--
		p.AirTime = cfg.Player.WallContactMinAir + 1
	}
}

// updatePlayerState derives facing, air time, wall slide, and the action
// state. Fatal falls are resolved here as well.
func (s *Simulation) updatePlayerState(e *donburi.Entry, it components.Intent) {
	p := components.Player.Get(e)
	ph := components.Physics.Get(e)
	st := components.State.Get(e)

	if it.MoveX > 0 {
		ph.FacingLeft = false
	} else if it.MoveX < 0 {
		ph.FacingLeft = true
	}

	if ph.Grounded {
		p.AirTime = 0
		p.Jumps = 1
	} else {
		p.AirTime++
	}

	if p.AirTime > cfg.Player.AirTimeFatal {
		s.hurtPlayer(e)
		return
	}

	p.WallSlide = false
	if (ph.Contacts.Right || ph.Contacts.Left) && p.AirTime > cfg.Player.WallContactMinAir {
		p.WallSlide = true
		if ph.Velocity.Y > cfg.Player.WallSlideMaxSpeed {
			ph.Velocity.Y = cfg.Player.WallSlideMaxSpeed
		}
		// Face away from the wall, ready for the wall jump.
		ph.FacingLeft = ph.Contacts.Left
	}

	st.Enter(s.nextPlayerState(e, it), 0)
}

// nextPlayerState is the player's transition function. The state set is
// closed; every StateID must be handled here.
func (s *Simulation) nextPlayerState(e *donburi.Entry, it components.Intent) cfg.StateID {
	st := components.State.Get(e)

	switch st.Current {
	case cfg.StateDead:
		return cfg.StateDead
	case cfg.StateHit:
		if st.Timer > 0 {
			return cfg.StateHit
		}
		return s.locomotionState(e, it)
	case cfg.StateNone, cfg.StateIdle, cfg.StateRun, cfg.StateJump,
		cfg.StateFall, cfg.StateWallSlide, cfg.StateDash:
		return s.locomotionState(e, it)
	default:
		log.Printf("Warning: player in unknown state %v, resetting to idle", st.Current)
		return cfg.StateIdle
	}
}

// locomotionState classifies free movement from the physics results.
func (s *Simulation) locomotionState(e *donburi.Entry, it components.Intent) cfg.StateID {
	p := components.Player.Get(e)
	ph := components.Physics.Get(e)

	switch {
	case abs(p.Dashing) > cfg.Player.DashActiveMin:
		return cfg.StateDash
	case p.WallSlide:
		return cfg.StateWallSlide
	case p.AirTime > cfg.Player.WallContactMinAir && ph.Velocity.Y < 0:
		return cfg.StateJump
	case p.AirTime > cfg.Player.WallContactMinAir:
		return cfg.StateFall
	case it.MoveX != 0:
		return cfg.StateRun
	default:
		return cfg.StateIdle
	}
}

// hurtPlayer consumes a life. With lives remaining the player respawns in
// hit stun at the respawn point; otherwise the entity goes terminal.
func (s *Simulation) hurtPlayer(e *donburi.Entry) {
	p := components.Player.Get(e)
	ph := components.Physics.Get(e)
	st := components.State.Get(e)
	obj := components.Object.Get(e)

	s.deaths++
	p.Lives--

	if p.Lives <= 0 {
		st.Enter(cfg.StateDead, 0)
		return
	}

	obj.X, obj.Y = p.RespawnX, p.RespawnY
	obj.Update()
	ph.Velocity = components.Vector{}
	ph.Grounded = false
	p.AirTime = 0
	p.Jumps = 1
	p.Dashing = 0
	p.WallSlide = false
	st.Enter(cfg.StateHit, cfg.Player.HitStunTicks)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
