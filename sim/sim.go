// Package sim implements the deterministic fixed-step simulation core: tile
// collision, entity physics, and the tick orchestrator. It is fully headless;
// rendering, audio and input devices live outside and only exchange plain
// values with it. Two Simulation instances never share state, so independent
// instances may run in parallel (batch analysis, ghost playback, tests).
package sim

import (
	"github.com/automoto/tilerunner/archetypes"
	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/leveldata"
	"github.com/automoto/tilerunner/rng"
	"github.com/automoto/tilerunner/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Simulation owns one independent game world advanced by discrete ticks.
// Entity state is only consistent at tick boundaries; nothing observes a
// world mid-step.
type Simulation struct {
	world donburi.World
	space *resolv.Space
	grid  *leveldata.Grid
	rand  *rng.Stream

	levelName string
	seed      int64

	tick   int64
	score  int
	deaths int

	// Entities in insertion order. Stepping and snapshotting iterate these
	// slices, never an unordered structure — entity order is part of the
	// determinism contract.
	players     []donburi.Entity
	enemies     []donburi.Entity
	projectiles []donburi.Entity
	coins       []donburi.Entity
}

// New builds a simulation from a loaded level, explicitly seeded. The level's
// grid is shared, not copied; it is immutable while any simulation reads it.
func New(level *leveldata.Level, seed int64) *Simulation {
	w, h := level.Grid.PixelBounds()
	s := &Simulation{
		world:     donburi.NewWorld(),
		space:     resolv.NewSpace(w, h, cfg.Sim.SpaceCellSize, cfg.Sim.SpaceCellSize),
		grid:      level.Grid,
		rand:      rng.New(seed),
		levelName: level.Name,
		seed:      seed,
	}

	for i, p := range level.PlayerSpawns {
		s.spawnPlayer(i, p.X, p.Y)
	}
	for i, p := range level.EnemySpawns {
		s.spawnEnemy(i, p.X, p.Y)
	}
	for _, p := range level.CoinSpawns {
		s.spawnCoin(p.X, p.Y)
	}
	return s
}

// SetIntent queues the input intent the given player will consume on the
// next Step. One-shot flags (jump/dash/fire) are cleared by the step that
// consumes them.
func (s *Simulation) SetIntent(player int, it components.Intent) {
	if player < 0 || player >= len(s.players) {
		return
	}
	e := s.world.Entry(s.players[player])
	components.IntentComponent.Get(e).Current = it
}

// Step advances the simulation by exactly one tick and returns the new tick
// index. Order is fixed: players, then enemies, then projectiles, then
// pickups, each in entity insertion order. The method is synchronous and
// allocation-light; it never blocks.
func (s *Simulation) Step() int64 {
	for _, ent := range s.players {
		s.stepPlayer(s.world.Entry(ent))
	}
	for _, ent := range s.enemies {
		s.stepEnemy(s.world.Entry(ent))
	}
	s.stepProjectiles()
	s.collectCoins()

	s.tick++
	return s.tick
}

// StepWithIntents applies one intent per player slot and advances one tick.
func (s *Simulation) StepWithIntents(intents map[int]components.Intent) int64 {
	for player, it := range intents {
		s.SetIntent(player, it)
	}
	return s.Step()
}

// Tick returns the current logical tick index.
func (s *Simulation) Tick() int64 { return s.tick }

// SetTickIndex overwrites the tick counter; used by snapshot restore only.
func (s *Simulation) SetTickIndex(t int64) { s.tick = t }

// Score returns the collected coin count plus kill bonuses.
func (s *Simulation) Score() int { return s.score }

// SetScore overwrites the score; used by snapshot restore only.
func (s *Simulation) SetScore(v int) { s.score = v }

// Deaths returns the cumulative player death counter.
func (s *Simulation) Deaths() int { return s.deaths }

// SetDeaths overwrites the death counter; used by snapshot restore only.
func (s *Simulation) SetDeaths(v int) { s.deaths = v }

// Seed returns the seed the simulation's RNG was created with.
func (s *Simulation) Seed() int64 { return s.seed }

// RNG returns the simulation's random stream.
func (s *Simulation) RNG() *rng.Stream { return s.rand }

// Grid returns the immutable collision grid.
func (s *Simulation) Grid() *leveldata.Grid { return s.grid }

// LevelName returns the name of the loaded level.
func (s *Simulation) LevelName() string { return s.levelName }

// PlayerEntries returns player entries in insertion order.
func (s *Simulation) PlayerEntries() []*donburi.Entry { return s.entries(s.players) }

// EnemyEntries returns enemy entries in insertion order.
func (s *Simulation) EnemyEntries() []*donburi.Entry { return s.entries(s.enemies) }

// ProjectileEntries returns projectile entries in insertion order.
func (s *Simulation) ProjectileEntries() []*donburi.Entry { return s.entries(s.projectiles) }

// CoinEntries returns coin entries in insertion order.
func (s *Simulation) CoinEntries() []*donburi.Entry { return s.entries(s.coins) }

func (s *Simulation) entries(ents []donburi.Entity) []*donburi.Entry {
	out := make([]*donburi.Entry, 0, len(ents))
	for _, ent := range ents {
		out = append(out, s.world.Entry(ent))
	}
	return out
}

// ClearProjectiles removes every live projectile; snapshot restore rehydrates
// them afterwards.
func (s *Simulation) ClearProjectiles() {
	for _, ent := range s.projectiles {
		e := s.world.Entry(ent)
		s.space.Remove(components.Object.Get(e).Object)
		s.world.Remove(ent)
	}
	s.projectiles = s.projectiles[:0]
}

// SpawnProjectile creates a projectile in flight. Exposed for snapshot
// rehydration; gameplay code uses the same path internally.
func (s *Simulation) SpawnProjectile(owner components.OwnerKind, x, y, velX float64, age int) {
	e := archetypes.Projectile.Spawn(s.world)

	obj := resolv.NewObject(x, y, cfg.Projectile.Width, cfg.Projectile.Height, tags.ResolvProjectile)
	obj.SetShape(resolv.NewRectangle(0, 0, cfg.Projectile.Width, cfg.Projectile.Height))
	obj.Data = e
	s.space.Add(obj)

	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Projectile.SetValue(e, components.ProjectileData{
		Owner: owner,
		VelX:  velX,
		Age:   age,
	})
	s.projectiles = append(s.projectiles, e.Entity())
}
