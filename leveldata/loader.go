package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// LoadLevel parses a TMX file into a Level. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS. The tile layer named "tiles" becomes the
// collision grid; tileset tiles may carry a string property "kind"
// ("grass"/"stone") and default to stone. Object groups "PlayerSpawn",
// "EnemySpawn" and "Coins" supply spawn points.
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: non-square tiles (%dx%d)",
			tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	level := &Level{
		Name: strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Grid: NewGrid(levelMap.TileWidth),
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != "tiles" {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				kind := TileStone
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if tilesetTile.Properties.GetString("kind") == "grass" {
						kind = TileGrass
					}
				}
				level.Grid.Set(x, y, kind)
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		var dst *[]Point
		switch og.Name {
		case "PlayerSpawn":
			dst = &level.PlayerSpawns
		case "EnemySpawn":
			dst = &level.EnemySpawns
		case "Coins":
			dst = &level.CoinSpawns
		default:
			continue
		}
		for _, o := range og.Objects {
			*dst = append(*dst, Point{X: o.X, Y: o.Y})
		}
	}

	// Left-to-right spawn order keeps entity creation order independent of
	// how the editor happened to serialize the objects.
	for _, pts := range [][]Point{level.PlayerSpawns, level.EnemySpawns, level.CoinSpawns} {
		sort.Slice(pts, func(i, j int) bool {
			if pts[i].X != pts[j].X {
				return pts[i].X < pts[j].X
			}
			return pts[i].Y < pts[j].Y
		})
	}

	return level, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys and returns
// them keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
