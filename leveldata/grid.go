// Package leveldata provides tile level parsing and the sparse tile grid the
// simulation collides against. It has no dependency on ebitengine, donburi,
// or resolv — pure data only.
package leveldata

// TileKind identifies the type of a grid tile.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileGrass
	TileStone
)

// Solid reports whether entities collide with this tile kind.
func (k TileKind) Solid() bool {
	return k == TileGrass || k == TileStone
}

// Cell is an integer grid coordinate (column, row).
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a sparse mapping from grid coordinates to tile kinds. Lookup is
// O(1). A Grid is mutated only while a level is being loaded or edited; it is
// immutable for the lifetime of any simulation reading it.
type Grid struct {
	tileSize int
	tiles    map[Cell]TileKind

	maxX, maxY int
}

// NewGrid returns an empty grid with the given tile edge length in pixels.
func NewGrid(tileSize int) *Grid {
	return &Grid{
		tileSize: tileSize,
		tiles:    make(map[Cell]TileKind),
	}
}

// Set places a tile. Build-time only; never call while a simulation holds
// the grid.
func (g *Grid) Set(x, y int, kind TileKind) {
	if kind == TileEmpty {
		delete(g.tiles, Cell{x, y})
		return
	}
	g.tiles[Cell{x, y}] = kind
	if x > g.maxX {
		g.maxX = x
	}
	if y > g.maxY {
		g.maxY = y
	}
}

// PixelBounds returns the level extent in pixels, covering every placed tile.
func (g *Grid) PixelBounds() (w, h int) {
	return (g.maxX + 1) * g.tileSize, (g.maxY + 1) * g.tileSize
}

// At returns the tile kind at a grid coordinate, TileEmpty when unset.
func (g *Grid) At(x, y int) TileKind {
	return g.tiles[Cell{x, y}]
}

// Solid reports whether the grid coordinate holds a solid tile.
func (g *Grid) Solid(x, y int) bool {
	return g.tiles[Cell{x, y}].Solid()
}

// SolidAtPixel reports whether the pixel position lies inside a solid tile.
func (g *Grid) SolidAtPixel(px, py float64) bool {
	ts := float64(g.tileSize)
	return g.Solid(floorDiv(px, ts), floorDiv(py, ts))
}

// TileSize returns the tile edge length in pixels.
func (g *Grid) TileSize() int {
	return g.tileSize
}

// Count returns how many non-empty tiles the grid holds.
func (g *Grid) Count() int {
	return len(g.tiles)
}

// floorDiv maps a pixel coordinate to its cell index, correct for negatives.
func floorDiv(v, size float64) int {
	q := v / size
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
