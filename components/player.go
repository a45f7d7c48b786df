package components

import "github.com/yohamta/donburi"

type PlayerData struct {
	ID    int
	Lives int

	// AirTime counts consecutive airborne ticks; resets on ground contact.
	AirTime int

	// Jumps remaining before touching ground again.
	Jumps int

	WallSlide bool

	// Dashing counts down from ±DashDuration toward zero; sign is direction.
	Dashing int

	ShootCooldown int

	RespawnX, RespawnY float64
}

var Player = donburi.NewComponentType[PlayerData]()
