package components

import "github.com/yohamta/donburi"

// OwnerKind identifies which side fired a projectile.
type OwnerKind uint8

const (
	OwnerPlayer OwnerKind = iota
	OwnerEnemy
)

func (o OwnerKind) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

type ProjectileData struct {
	Owner OwnerKind
	VelX  float64
	Age   int
}

var Projectile = donburi.NewComponentType[ProjectileData]()
