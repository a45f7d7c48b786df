package sim

import (
	"testing"

	"github.com/automoto/tilerunner/leveldata"
)

func corridorGrid(t *testing.T) *leveldata.Grid {
	t.Helper()
	level, err := leveldata.ParseASCII("corridor", 16, []string{
		"##########",
		"#P       #",
		"#        #",
		"##########",
	})
	if err != nil {
		t.Fatal(err)
	}
	return level.Grid
}

func TestResolveHorizontalClampsAtWall(t *testing.T) {
	g := corridorGrid(t)

	// Interior spans x in [16, 144). A 8-wide rect moving right must stop
	// with its right edge on the wall regardless of displacement size.
	for _, dx := range []float64{1, 7.5, 16, 200, 1e6} {
		nx, blocked := resolveHorizontal(g, 100, 20, 8, 8, dx)
		if want := 144.0 - 8; nx > want {
			t.Fatalf("dx=%v: x=%v passed wall edge %v", dx, nx, want)
		}
		if dx >= 40 && !blocked {
			t.Fatalf("dx=%v: expected blocked", dx)
		}
	}

	for _, dx := range []float64{-1, -50, -1e6} {
		nx, _ := resolveHorizontal(g, 100, 20, 8, 8, dx)
		if nx < 16 {
			t.Fatalf("dx=%v: x=%v passed left wall", dx, nx)
		}
	}
}

func TestResolveVerticalClampsAtFloorAndCeiling(t *testing.T) {
	g := corridorGrid(t)

	ny, blocked := resolveVertical(g, 40, 20, 8, 8, 1000)
	if want := 48.0 - 8; ny != want {
		t.Fatalf("floor clamp: got y=%v, want %v", ny, want)
	}
	if !blocked {
		t.Fatal("expected floor block")
	}

	ny, blocked = resolveVertical(g, 40, 20, 8, 8, -1000)
	if ny != 16 {
		t.Fatalf("ceiling clamp: got y=%v, want 16", ny)
	}
	if !blocked {
		t.Fatal("expected ceiling block")
	}
}

func TestExactBoundaryIsContactNotOverlap(t *testing.T) {
	g := corridorGrid(t)

	// Right edge exactly on the wall boundary: not overlapping.
	if overlapsSolid(g, 144-8, 20, 8, 8) {
		t.Fatal("flush rect reported as overlapping")
	}
	// But any further motion is blocked in place.
	nx, blocked := resolveHorizontal(g, 144-8, 20, 8, 8, 0.5)
	if !blocked || nx != 144-8 {
		t.Fatalf("flush rect: got x=%v blocked=%v", nx, blocked)
	}
}

func TestGroundProbeBoundaryInclusive(t *testing.T) {
	g := corridorGrid(t)
	floorTop := 48.0

	// Flush on the floor.
	if !groundContact(g, 40, floorTop-8, 8, 8) {
		t.Fatal("flush rect not grounded")
	}
	// Exactly one pixel above.
	if !groundContact(g, 40, floorTop-9, 8, 8) {
		t.Fatal("1px gap not grounded")
	}
	// More than one pixel above.
	if groundContact(g, 40, floorTop-10.5, 8, 8) {
		t.Fatal("rect 2.5px above floor reported grounded")
	}
}

func TestEjectFromSolid(t *testing.T) {
	g := corridorGrid(t)

	// Mostly inside the floor, slightly above center: ejected upward.
	x, y, ejected := ejectFromSolid(g, 40, 44, 8, 8)
	if !ejected {
		t.Fatal("expected ejection")
	}
	if overlapsSolid(g, x, y, 8, 8) {
		t.Fatalf("still embedded after ejection at (%v, %v)", x, y)
	}

	// Free rect is untouched.
	x, y, ejected = ejectFromSolid(g, 40, 20, 8, 8)
	if ejected || x != 40 || y != 20 {
		t.Fatalf("free rect moved: (%v, %v) ejected=%v", x, y, ejected)
	}
}
