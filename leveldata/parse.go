package leveldata

import "fmt"

// ParseASCII builds a Level from rows of characters, one cell per rune:
//
//	'#' stone   'G' grass   'P' player spawn   'E' enemy spawn
//	'o' coin    ' ' or '.' empty
//
// Spawn markers place the entity's top-left at the cell's top-left. Used by
// the built-in level and throughout the tests.
func ParseASCII(name string, tileSize int, rows []string) (*Level, error) {
	level := &Level{
		Name: name,
		Grid: NewGrid(tileSize),
	}
	ts := float64(tileSize)

	for y, row := range rows {
		for x, r := range row {
			switch r {
			case '#':
				level.Grid.Set(x, y, TileStone)
			case 'G':
				level.Grid.Set(x, y, TileGrass)
			case 'P':
				level.PlayerSpawns = append(level.PlayerSpawns, Point{X: float64(x) * ts, Y: float64(y) * ts})
			case 'E':
				level.EnemySpawns = append(level.EnemySpawns, Point{X: float64(x) * ts, Y: float64(y) * ts})
			case 'o':
				level.CoinSpawns = append(level.CoinSpawns, Point{X: float64(x) * ts, Y: float64(y) * ts})
			case ' ', '.':
			default:
				return nil, fmt.Errorf("parse level %s: unknown rune %q at (%d,%d)", name, r, x, y)
			}
		}
	}

	if len(level.PlayerSpawns) == 0 {
		return nil, fmt.Errorf("parse level %s: no player spawn", name)
	}
	return level, nil
}

// DefaultLevel returns the built-in level used when no TMX assets are
// present on disk.
func DefaultLevel(tileSize int) *Level {
	rows := []string{
		"########################################",
		"#                                      #",
		"#                                      #",
		"#            o   o                     #",
		"#          #########                   #",
		"#                          o           #",
		"#    P                   #####    E    #",
		"#                                #######",
		"#        o     E       o               #",
		"#GGGGGGG####GGGGGGG####GGGG   GGGGGGGGG#",
		"########################################",
	}
	level, err := ParseASCII("builtin", tileSize, rows)
	if err != nil {
		// The built-in rows are constant; a parse failure is a programming
		// error caught by tests, not a runtime condition.
		panic(err)
	}
	return level
}
