package sim

import (
	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/tags"
	"github.com/yohamta/donburi"
)

// Enemy decisions are the simulation's only RNG consumers. Both draws — the
// start-walking roll and the walk duration — happen in a fixed order per
// enemy per tick, so replayed runs consume the stream identically.

// stepEnemy runs one tick of patrol/shoot behavior, then the shared physics
// sequence.
func (s *Simulation) stepEnemy(e *donburi.Entry) {
	st := components.State.Get(e)
	if st.Current == cfg.StateDead {
		return
	}

	en := components.Enemy.Get(e)
	ph := components.Physics.Get(e)
	obj := components.Object.Get(e)

	// Behavior reads last tick's contacts, so it runs before beginStep
	// clears them.
	moveX := 0.0
	if en.Walking > 0 {
		dir := cfg.Enemy.WalkSpeed
		if ph.FacingLeft {
			dir = -cfg.Enemy.WalkSpeed
		}
		// Probe half a tile ahead and below the front foot: walk only while
		// there is floor to walk onto, turning around at ledges and walls.
		ts := float64(s.grid.TileSize())
		probeX := obj.X + obj.W/2
		if ph.FacingLeft {
			probeX -= ts / 2
		} else {
			probeX += ts / 2
		}
		if s.grid.SolidAtPixel(probeX, obj.Y+obj.H+ts/2) {
			if ph.Contacts.Left || ph.Contacts.Right {
				ph.FacingLeft = !ph.FacingLeft
			} else {
				moveX = dir
			}
		} else {
			ph.FacingLeft = !ph.FacingLeft
		}
		en.Walking--
		if en.Walking == 0 {
			s.enemyTryShoot(e)
		}
	} else if s.rand.Chance(cfg.Enemy.WalkChance) {
		en.Walking = s.rand.Range(cfg.Enemy.WalkTicksMin, cfg.Enemy.WalkTicksMax)
	}

	s.beginStep(e)
	s.applyHorizontal(e, moveX+ph.Velocity.X)
	s.applyVertical(e, ph.Velocity.Y)
	s.applyGravity(e)

	if moveX != 0 {
		st.Enter(cfg.StateRun, 0)
	} else {
		st.Enter(cfg.StateIdle, 0)
	}

	s.checkDashKill(e)
}

// enemyTryShoot fires at the nearest living player if it sits within the
// vertical shooting window on the side the enemy is facing.
func (s *Simulation) enemyTryShoot(e *donburi.Entry) {
	ph := components.Physics.Get(e)
	obj := components.Object.Get(e)

	target := s.nearestLivingPlayer(obj.X)
	if target == nil {
		return
	}
	tObj := components.Object.Get(target)

	dy := (tObj.Y + tObj.H/2) - (obj.Y + obj.H/2)
	if dy < -cfg.Enemy.ShootRangeY || dy > cfg.Enemy.ShootRangeY {
		return
	}

	dx := (tObj.X + tObj.W/2) - (obj.X + obj.W/2)
	switch {
	case ph.FacingLeft && dx < 0:
		s.SpawnProjectile(components.OwnerEnemy,
			obj.X-cfg.Enemy.MuzzleOffsetX-cfg.Projectile.Width,
			obj.Y+obj.H/2,
			-cfg.Projectile.Speed, 0)
	case !ph.FacingLeft && dx > 0:
		s.SpawnProjectile(components.OwnerEnemy,
			obj.X+obj.W+cfg.Enemy.MuzzleOffsetX,
			obj.Y+obj.H/2,
			cfg.Projectile.Speed, 0)
	}
}

// nearestLivingPlayer returns the closest non-dead player by horizontal
// distance, scanning in insertion order so ties resolve deterministically.
func (s *Simulation) nearestLivingPlayer(x float64) *donburi.Entry {
	var best *donburi.Entry
	bestDist := 0.0
	for _, ent := range s.players {
		e := s.world.Entry(ent)
		if components.State.Get(e).Current == cfg.StateDead {
			continue
		}
		d := components.Object.Get(e).X - x
		if d < 0 {
			d = -d
		}
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// firePlayerProjectile spawns a shot from the player's facing side, gated by
// the shoot cooldown.
func (s *Simulation) firePlayerProjectile(e *donburi.Entry) {
	p := components.Player.Get(e)
	if p.ShootCooldown > 0 {
		return
	}
	ph := components.Physics.Get(e)
	obj := components.Object.Get(e)

	if ph.FacingLeft {
		s.SpawnProjectile(components.OwnerPlayer,
			obj.X-cfg.Projectile.Width,
			obj.Y+obj.H/2,
			-cfg.Projectile.Speed*2, 0)
	} else {
		s.SpawnProjectile(components.OwnerPlayer,
			obj.X+obj.W,
			obj.Y+obj.H/2,
			cfg.Projectile.Speed*2, 0)
	}
	p.ShootCooldown = cfg.Player.ShootCooldown
}

// checkDashKill removes the enemy if a dashing player overlaps it.
func (s *Simulation) checkDashKill(e *donburi.Entry) {
	obj := components.Object.Get(e)
	st := components.State.Get(e)

	col := obj.Check(0, 0, tags.ResolvPlayer)
	if col == nil {
		return
	}
	for _, other := range col.ObjectsByTags(tags.ResolvPlayer) {
		pe, ok := other.Data.(*donburi.Entry)
		if !ok {
			continue
		}
		p := components.Player.Get(pe)
		if components.State.Get(pe).Current == cfg.StateDead {
			continue
		}
		if abs(p.Dashing) >= cfg.Player.DashActiveMin {
			st.Enter(cfg.StateDead, 0)
			s.score++
			return
		}
	}
}

// stepProjectiles advances every projectile and resolves expiry, tile impact,
// and entity hits. Removal preserves the insertion order of survivors.
func (s *Simulation) stepProjectiles() {
	alive := s.projectiles[:0]
	for _, ent := range s.projectiles {
		e := s.world.Entry(ent)
		pr := components.Projectile.Get(e)
		obj := components.Object.Get(e)

		obj.X += pr.VelX
		obj.Update()
		pr.Age++

		remove := false
		switch {
		case overlapsSolid(s.grid, obj.X, obj.Y, obj.W, obj.H):
			remove = true
		case pr.Age > cfg.Projectile.MaxAge:
			remove = true
		case pr.Owner == components.OwnerEnemy:
			remove = s.projectileHitsPlayer(obj)
		case pr.Owner == components.OwnerPlayer:
			remove = s.projectileHitsEnemy(obj)
		}

		if remove {
			s.space.Remove(obj.Object)
			s.world.Remove(ent)
		} else {
			alive = append(alive, ent)
		}
	}
	s.projectiles = alive
}

// projectileHitsPlayer hurts the first vulnerable player the shot overlaps.
// Dashing players pass through shots untouched.
func (s *Simulation) projectileHitsPlayer(obj *components.ObjectData) bool {
	col := obj.Check(0, 0, tags.ResolvPlayer)
	if col == nil {
		return false
	}
	for _, other := range col.ObjectsByTags(tags.ResolvPlayer) {
		pe, ok := other.Data.(*donburi.Entry)
		if !ok {
			continue
		}
		st := components.State.Get(pe)
		if st.Current == cfg.StateDead || st.Current == cfg.StateHit {
			continue
		}
		if abs(components.Player.Get(pe).Dashing) >= cfg.Player.DashActiveMin {
			continue
		}
		s.hurtPlayer(pe)
		return true
	}
	return false
}

// projectileHitsEnemy kills the first living enemy the shot overlaps.
func (s *Simulation) projectileHitsEnemy(obj *components.ObjectData) bool {
	col := obj.Check(0, 0, tags.ResolvEnemy)
	if col == nil {
		return false
	}
	for _, other := range col.ObjectsByTags(tags.ResolvEnemy) {
		ee, ok := other.Data.(*donburi.Entry)
		if !ok {
			continue
		}
		st := components.State.Get(ee)
		if st.Current == cfg.StateDead {
			continue
		}
		st.Enter(cfg.StateDead, 0)
		s.score++
		return true
	}
	return false
}

// collectCoins marks coins overlapped by a living player as collected.
// Collected coins stay in the world so entity counts remain stable across
// snapshot and restore.
func (s *Simulation) collectCoins() {
	for _, ent := range s.coins {
		e := s.world.Entry(ent)
		c := components.Coin.Get(e)
		if c.Collected {
			continue
		}
		obj := components.Object.Get(e)
		col := obj.Check(0, 0, tags.ResolvPlayer)
		if col == nil {
			continue
		}
		for _, other := range col.ObjectsByTags(tags.ResolvPlayer) {
			pe, ok := other.Data.(*donburi.Entry)
			if !ok {
				continue
			}
			if components.State.Get(pe).Current == cfg.StateDead {
				continue
			}
			c.Collected = true
			s.score++
			break
		}
	}
}
