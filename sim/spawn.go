package sim

import (
	"github.com/automoto/tilerunner/archetypes"
	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/leveldata"
	"github.com/automoto/tilerunner/tags"
	"github.com/solarlune/resolv"
)

// settleToFloor drops a freshly spawned body onto the floor directly below,
// if one lies within a tile. Spawn markers are tile-aligned, so a body
// shorter than a tile would otherwise start a sliver above the ground and
// spend its first ticks falling.
func settleToFloor(g *leveldata.Grid, obj *resolv.Object) {
	ny, blocked := resolveVertical(g, obj.X, obj.Y, obj.W, obj.H, float64(g.TileSize()))
	if blocked {
		obj.Y = ny
		obj.Update()
	}
}

func (s *Simulation) spawnPlayer(id int, x, y float64) {
	e := archetypes.Player.Spawn(s.world)

	obj := resolv.NewObject(x, y, cfg.Player.CollisionWidth, cfg.Player.CollisionHeight, tags.ResolvPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, cfg.Player.CollisionWidth, cfg.Player.CollisionHeight))
	obj.Data = e
	s.space.Add(obj)
	settleToFloor(s.grid, obj)

	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Player.SetValue(e, components.PlayerData{
		ID:       id,
		Lives:    cfg.Player.StartingLives,
		Jumps:    1,
		RespawnX: obj.X,
		RespawnY: obj.Y,
	})
	components.State.SetValue(e, components.StateData{
		Current:  cfg.StateIdle,
		Previous: cfg.StateNone,
	})
	components.Physics.SetValue(e, components.PhysicsData{})
	components.IntentComponent.SetValue(e, components.IntentData{})

	s.players = append(s.players, e.Entity())
}

func (s *Simulation) spawnEnemy(id int, x, y float64) {
	e := archetypes.Enemy.Spawn(s.world)

	obj := resolv.NewObject(x, y, cfg.Enemy.CollisionWidth, cfg.Enemy.CollisionHeight, tags.ResolvEnemy)
	obj.SetShape(resolv.NewRectangle(0, 0, cfg.Enemy.CollisionWidth, cfg.Enemy.CollisionHeight))
	obj.Data = e
	s.space.Add(obj)
	settleToFloor(s.grid, obj)

	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Enemy.SetValue(e, components.EnemyData{ID: id})
	components.State.SetValue(e, components.StateData{
		Current:  cfg.StateIdle,
		Previous: cfg.StateNone,
	})
	components.Physics.SetValue(e, components.PhysicsData{})

	s.enemies = append(s.enemies, e.Entity())
}

func (s *Simulation) spawnCoin(x, y float64) {
	e := archetypes.Coin.Spawn(s.world)

	ts := float64(s.grid.TileSize())
	obj := resolv.NewObject(x, y, ts, ts, tags.ResolvCoin)
	obj.SetShape(resolv.NewRectangle(0, 0, ts, ts))
	obj.Data = e
	s.space.Add(obj)

	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Coin.SetValue(e, components.CoinData{})

	s.coins = append(s.coins, e.Entity())
}
