package components

import "github.com/yohamta/donburi"

type EnemyData struct {
	ID int

	// Walking counts down remaining patrol ticks; zero means standing.
	Walking int
}

var Enemy = donburi.NewComponentType[EnemyData]()
