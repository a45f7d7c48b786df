package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Enemy      = donburi.NewTag().SetName("Enemy")
	Projectile = donburi.NewTag().SetName("Projectile")
	Coin       = donburi.NewTag().SetName("Coin")
)

// Resolv tags for the dynamic-entity collision space. Static tile collision
// never goes through resolv; these cover entity-vs-entity overlap only.
const (
	ResolvPlayer     = "player"
	ResolvEnemy      = "enemy"
	ResolvProjectile = "projectile"
	ResolvCoin       = "coin"
)
