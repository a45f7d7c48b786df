package leveldata

import "testing"

func TestGridLookup(t *testing.T) {
	g := NewGrid(16)
	g.Set(2, 3, TileStone)
	g.Set(-1, 0, TileGrass)

	if got := g.At(2, 3); got != TileStone {
		t.Errorf("At(2,3) = %v, want stone", got)
	}
	if !g.Solid(2, 3) || !g.Solid(-1, 0) {
		t.Error("expected solid tiles")
	}
	if g.Solid(0, 0) {
		t.Error("unset cell reported solid")
	}

	g.Set(2, 3, TileEmpty)
	if g.Solid(2, 3) {
		t.Error("cleared cell still solid")
	}
	if g.Count() != 1 {
		t.Errorf("Count = %d, want 1", g.Count())
	}
}

func TestSolidAtPixelNegativeCoords(t *testing.T) {
	g := NewGrid(16)
	g.Set(-1, -1, TileStone)

	if !g.SolidAtPixel(-0.5, -0.5) {
		t.Error("pixel (-0.5,-0.5) should map to cell (-1,-1)")
	}
	if g.SolidAtPixel(0, 0) {
		t.Error("pixel (0,0) should map to cell (0,0), which is empty")
	}
}

func TestParseASCII(t *testing.T) {
	level, err := ParseASCII("t", 16, []string{
		"####",
		"#P.o",
		"#GGE",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !level.Grid.Solid(0, 0) || !level.Grid.Solid(3, 0) {
		t.Error("top wall not solid")
	}
	if level.Grid.At(1, 2) != TileGrass {
		t.Errorf("cell (1,2) = %v, want grass", level.Grid.At(1, 2))
	}
	if len(level.PlayerSpawns) != 1 || level.PlayerSpawns[0] != (Point{16, 16}) {
		t.Errorf("player spawns = %+v", level.PlayerSpawns)
	}
	if len(level.EnemySpawns) != 1 || len(level.CoinSpawns) != 1 {
		t.Errorf("spawn counts: enemies %d coins %d", len(level.EnemySpawns), len(level.CoinSpawns))
	}
}

func TestParseASCIIRejectsUnknownRune(t *testing.T) {
	if _, err := ParseASCII("t", 16, []string{"P?"}); err == nil {
		t.Fatal("expected error for unknown rune")
	}
}

func TestDefaultLevelIsWellFormed(t *testing.T) {
	level := DefaultLevel(16)
	if len(level.PlayerSpawns) == 0 {
		t.Fatal("default level has no player spawn")
	}
	if level.Grid.Count() == 0 {
		t.Fatal("default level has no tiles")
	}
}
