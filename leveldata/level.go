package leveldata

// Point is a pixel-space spawn position.
type Point struct {
	X, Y float64
}

// Level holds everything a simulation needs to start: the immutable collision
// grid plus spawn positions extracted from the level source.
type Level struct {
	Name string
	Grid *Grid

	PlayerSpawns []Point
	EnemySpawns  []Point
	CoinSpawns   []Point
}
