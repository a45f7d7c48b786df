package sim

import (
	"math"

	"github.com/automoto/tilerunner/leveldata"
)

// Tile collision resolution. Each axis is resolved independently: the caller
// applies the horizontal displacement fully before the vertical one, which
// fixes the tie-break at inside corners and prevents diagonal tunneling.
//
// Candidate tiles are enumerated straight from the displaced rectangle's
// bounding cell range, so the hot path allocates nothing. A rectangle edge
// exactly on a tile boundary is in contact, not overlapping; grounding uses
// the one-pixel-down probe below.

// firstCell maps a coordinate to the cell containing it.
func firstCell(v, ts float64) int {
	q := v / ts
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}

// lastCell maps an exclusive upper bound to the last cell it reaches into.
// A bound exactly on a cell boundary does not enter the next cell.
func lastCell(v, ts float64) int {
	c := firstCell(v, ts)
	if float64(c)*ts == v {
		c--
	}
	return c
}

// resolveHorizontal applies dx to the rectangle and clamps its leading edge
// against solid tiles. The whole traversed range is swept, so no displacement
// magnitude can tunnel through a wall. Returns the corrected X and whether
// motion was blocked; on a block the caller zeroes the axis velocity.
func resolveHorizontal(g *leveldata.Grid, x, y, w, h, dx float64) (float64, bool) {
	nx := x + dx
	if dx == 0 {
		return nx, false
	}

	ts := float64(g.TileSize())
	cy0, cy1 := firstCell(y, ts), lastCell(y+h, ts)
	var cx0, cx1 int
	if dx > 0 {
		cx0, cx1 = firstCell(x+w, ts), lastCell(nx+w, ts)
	} else {
		cx0, cx1 = firstCell(nx, ts), lastCell(x, ts)
	}

	blocked := false
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			if !g.Solid(cx, cy) {
				continue
			}
			if dx > 0 {
				if edge := float64(cx)*ts - w; edge < nx {
					if edge < x {
						edge = x
					}
					nx = edge
					blocked = true
				}
			} else {
				if edge := float64(cx+1) * ts; edge > nx {
					if edge > x {
						edge = x
					}
					nx = edge
					blocked = true
				}
			}
		}
	}
	return nx, blocked
}

// resolveVertical applies dy to the rectangle and clamps against solid tiles,
// sweeping the traversed range like resolveHorizontal. Returns the corrected
// Y and whether motion was blocked.
func resolveVertical(g *leveldata.Grid, x, y, w, h, dy float64) (float64, bool) {
	ny := y + dy
	if dy == 0 {
		return ny, false
	}

	ts := float64(g.TileSize())
	cx0, cx1 := firstCell(x, ts), lastCell(x+w, ts)
	var cy0, cy1 int
	if dy > 0 {
		cy0, cy1 = firstCell(y+h, ts), lastCell(ny+h, ts)
	} else {
		cy0, cy1 = firstCell(ny, ts), lastCell(y, ts)
	}

	blocked := false
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			if !g.Solid(cx, cy) {
				continue
			}
			if dy > 0 {
				if edge := float64(cy)*ts - h; edge < ny {
					if edge < y {
						edge = y
					}
					ny = edge
					blocked = true
				}
			} else {
				if edge := float64(cy+1) * ts; edge > ny {
					if edge > y {
						edge = y
					}
					ny = edge
					blocked = true
				}
			}
		}
	}
	return ny, blocked
}

// groundContact is the one-pixel-down probe: true when a solid tile lies
// within one pixel below the rectangle's bottom edge, boundary inclusive.
func groundContact(g *leveldata.Grid, x, y, w, h float64) bool {
	ts := float64(g.TileSize())
	cx0, cx1 := firstCell(x, ts), lastCell(x+w, ts)
	cy0, cy1 := firstCell(y+h, ts), firstCell(y+h+1, ts)
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			if g.Solid(cx, cy) {
				return true
			}
		}
	}
	return false
}

// ejectFromSolid resolves a rectangle that is already overlapping solid
// geometry (for example an entity spawned inside a tile), pushing it out
// along the axis of smaller overlap. Never fatal. Returns the corrected
// position and whether any correction was made.
func ejectFromSolid(g *leveldata.Grid, x, y, w, h float64) (float64, float64, bool) {
	ts := float64(g.TileSize())
	ejected := false

	// A few passes settle stacked overlaps; each pass moves at most one
	// tile's worth, so four passes cover any realistic embedding.
	for pass := 0; pass < 4; pass++ {
		moved := false
		for cy := firstCell(y, ts); cy <= lastCell(y+h, ts); cy++ {
			for cx := firstCell(x, ts); cx <= lastCell(x+w, ts); cx++ {
				if !g.Solid(cx, cy) {
					continue
				}
				tileX, tileY := float64(cx)*ts, float64(cy)*ts
				overlapX := math.Min(x+w, tileX+ts) - math.Max(x, tileX)
				overlapY := math.Min(y+h, tileY+ts) - math.Max(y, tileY)
				if overlapX <= 0 || overlapY <= 0 {
					continue
				}
				if overlapX < overlapY {
					if x+w/2 < tileX+ts/2 {
						x -= overlapX
					} else {
						x += overlapX
					}
				} else {
					if y+h/2 < tileY+ts/2 {
						y -= overlapY
					} else {
						y += overlapY
					}
				}
				moved, ejected = true, true
			}
		}
		if !moved {
			break
		}
	}
	return x, y, ejected
}

// overlapsSolid reports whether the rectangle currently overlaps any solid
// tile (strictly — boundary contact does not count).
func overlapsSolid(g *leveldata.Grid, x, y, w, h float64) bool {
	ts := float64(g.TileSize())
	for cy := firstCell(y, ts); cy <= lastCell(y+h, ts); cy++ {
		for cx := firstCell(x, ts); cx <= lastCell(x+w, ts); cx++ {
			if g.Solid(cx, cy) {
				return true
			}
		}
	}
	return false
}
