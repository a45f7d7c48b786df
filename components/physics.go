package components

import "github.com/yohamta/donburi"

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

// Contacts holds the collision flags produced by the most recent physics
// step. Reset at the start of every tick.
type Contacts struct {
	Up, Down, Left, Right bool
}

type PhysicsData struct {
	Velocity Vector
	Contacts Contacts

	// Grounded is derived by the vertical pass: down contact from the clamp,
	// or the one-pixel-down probe while at vertical rest.
	Grounded bool

	FacingLeft bool

	// LastMoveX is the horizontal input applied on the previous tick; wall
	// jumps require pushing into the wall.
	LastMoveX float64
}

var Physics = donburi.NewComponentType[PhysicsData]()
