// Package snapshot captures and restores complete simulation state. A FULL
// snapshot is sufficient to resume play bit-exactly; a LITE snapshot carries
// only the player track and the shared counters, and exists for replay drift
// correction where the full world is rebuilt by re-simulation anyway.
package snapshot

import (
	"fmt"

	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/rng"
	"github.com/automoto/tilerunner/sim"
	"github.com/yohamta/donburi"
)

// Version is the current snapshot schema version. Version 1 tokens are
// migrated on decode; anything else is rejected.
const Version = 2

// Mode selects how much state a capture carries.
type Mode int

const (
	Full Mode = iota
	Lite
)

func (m Mode) String() string {
	if m == Lite {
		return "lite"
	}
	return "full"
}

// EntityState is the serialized form of one physics entity. Player-only and
// enemy-only fields are zero for the other kind.
type EntityState struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	VelX       float64     `json:"velX"`
	VelY       float64     `json:"velY"`
	Grounded   bool        `json:"grounded,omitempty"`
	FacingLeft bool        `json:"facingLeft,omitempty"`
	LastMoveX  float64     `json:"lastMoveX,omitempty"`
	State      cfg.StateID `json:"state"`
	StateTimer int         `json:"stateTimer,omitempty"`

	Lives         int  `json:"lives,omitempty"`
	AirTime       int  `json:"airTime,omitempty"`
	Jumps         int  `json:"jumps,omitempty"`
	WallSlide     bool `json:"wallSlide,omitempty"`
	Dashing       int  `json:"dashing,omitempty"`
	ShootCooldown int  `json:"shootCooldown,omitempty"`

	Walking int `json:"walking,omitempty"`
}

// ProjectileState is the serialized form of one projectile in flight.
type ProjectileState struct {
	Owner components.OwnerKind `json:"owner"`
	X     float64              `json:"x"`
	Y     float64              `json:"y"`
	VelX  float64              `json:"velX"`
	Age   int                  `json:"age"`
}

// Snapshot is a complete serializable simulation state token.
type Snapshot struct {
	Version int    `json:"version"`
	Mode    string `json:"mode"`
	Level   string `json:"level"`
	Tick    int64  `json:"tick"`
	Score   int    `json:"score"`
	Deaths  int    `json:"deaths"`

	RNG rng.State `json:"rng"`

	Players     []EntityState     `json:"players"`
	Enemies     []EntityState     `json:"enemies,omitempty"`
	Projectiles []ProjectileState `json:"projectiles,omitempty"`
	Coins       []bool            `json:"coins,omitempty"`
}

// Capture records the simulation's state at the current tick boundary.
func Capture(s *sim.Simulation, mode Mode) *Snapshot {
	snap := &Snapshot{
		Version: Version,
		Mode:    mode.String(),
		Level:   s.LevelName(),
		Tick:    s.Tick(),
		Score:   s.Score(),
		Deaths:  s.Deaths(),
		RNG:     s.RNG().CaptureState(),
	}

	for _, e := range s.PlayerEntries() {
		es := captureBody(e)
		p := components.Player.Get(e)
		es.Lives = p.Lives
		es.AirTime = p.AirTime
		es.Jumps = p.Jumps
		es.WallSlide = p.WallSlide
		es.Dashing = p.Dashing
		es.ShootCooldown = p.ShootCooldown
		snap.Players = append(snap.Players, es)
	}
	if mode == Lite {
		return snap
	}

	for _, e := range s.EnemyEntries() {
		es := captureBody(e)
		es.Walking = components.Enemy.Get(e).Walking
		snap.Enemies = append(snap.Enemies, es)
	}
	for _, e := range s.ProjectileEntries() {
		obj := components.Object.Get(e)
		pr := components.Projectile.Get(e)
		snap.Projectiles = append(snap.Projectiles, ProjectileState{
			Owner: pr.Owner,
			X:     obj.X,
			Y:     obj.Y,
			VelX:  pr.VelX,
			Age:   pr.Age,
		})
	}
	for _, e := range s.CoinEntries() {
		snap.Coins = append(snap.Coins, components.Coin.Get(e).Collected)
	}
	return snap
}

func captureBody(e *donburi.Entry) EntityState {
	obj := components.Object.Get(e)
	ph := components.Physics.Get(e)
	st := components.State.Get(e)
	return EntityState{
		X:          obj.X,
		Y:          obj.Y,
		VelX:       ph.Velocity.X,
		VelY:       ph.Velocity.Y,
		Grounded:   ph.Grounded,
		FacingLeft: ph.FacingLeft,
		LastMoveX:  ph.LastMoveX,
		State:      st.Current,
		StateTimer: st.Timer,
	}
}

// Restore overwrites the simulation's state from a snapshot taken on the same
// level. Every validation happens before the first mutation, so a rejected
// snapshot leaves the simulation untouched. Restoring the same snapshot twice
// is a no-op the second time.
func Restore(s *sim.Simulation, snap *Snapshot) error {
	if snap.Version != Version {
		return fmt.Errorf("snapshot: unsupported version %d", snap.Version)
	}
	if snap.Level != s.LevelName() {
		return fmt.Errorf("snapshot: level %q does not match loaded level %q",
			snap.Level, s.LevelName())
	}
	players := s.PlayerEntries()
	if len(snap.Players) != len(players) {
		return fmt.Errorf("snapshot: player count %d does not match world %d",
			len(snap.Players), len(players))
	}
	lite := snap.Mode == Lite.String()
	enemies := s.EnemyEntries()
	coins := s.CoinEntries()
	if !lite {
		if len(snap.Enemies) != len(enemies) {
			return fmt.Errorf("snapshot: enemy count %d does not match world %d",
				len(snap.Enemies), len(enemies))
		}
		if len(snap.Coins) != len(coins) {
			return fmt.Errorf("snapshot: coin count %d does not match world %d",
				len(snap.Coins), len(coins))
		}
	}
	if err := s.RNG().RestoreState(snap.RNG); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	for i, es := range snap.Players {
		e := players[i]
		restoreBody(e, es)
		p := components.Player.Get(e)
		p.Lives = es.Lives
		p.AirTime = es.AirTime
		p.Jumps = es.Jumps
		p.WallSlide = es.WallSlide
		p.Dashing = es.Dashing
		p.ShootCooldown = es.ShootCooldown
	}
	s.SetTickIndex(snap.Tick)
	s.SetScore(snap.Score)
	s.SetDeaths(snap.Deaths)
	if lite {
		return nil
	}

	for i, es := range snap.Enemies {
		e := enemies[i]
		restoreBody(e, es)
		components.Enemy.Get(e).Walking = es.Walking
	}
	for i, collected := range snap.Coins {
		components.Coin.Get(coins[i]).Collected = collected
	}
	s.ClearProjectiles()
	for _, ps := range snap.Projectiles {
		s.SpawnProjectile(ps.Owner, ps.X, ps.Y, ps.VelX, ps.Age)
	}
	return nil
}

// ApplyEntity overwrites one entity's kinematic and gameplay fields from a
// serialized state, touching neither the RNG stream nor the global counters.
// Ghost drift correction hard-snaps through this.
func ApplyEntity(e *donburi.Entry, es EntityState) {
	restoreBody(e, es)
	if e.HasComponent(components.Player) {
		p := components.Player.Get(e)
		p.Lives = es.Lives
		p.AirTime = es.AirTime
		p.Jumps = es.Jumps
		p.WallSlide = es.WallSlide
		p.Dashing = es.Dashing
		p.ShootCooldown = es.ShootCooldown
	}
	if e.HasComponent(components.Enemy) {
		components.Enemy.Get(e).Walking = es.Walking
	}
}

func restoreBody(e *donburi.Entry, es EntityState) {
	obj := components.Object.Get(e)
	ph := components.Physics.Get(e)
	st := components.State.Get(e)

	obj.X, obj.Y = es.X, es.Y
	obj.Update()
	ph.Velocity = components.Vector{X: es.VelX, Y: es.VelY}
	ph.Contacts = components.Contacts{}
	ph.Grounded = es.Grounded
	ph.FacingLeft = es.FacingLeft
	ph.LastMoveX = es.LastMoveX
	st.Current = es.State
	st.Timer = es.StateTimer
}
