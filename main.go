package main

import (
	"flag"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/leveldata"
	"github.com/automoto/tilerunner/replay"
	"github.com/automoto/tilerunner/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, cfg.C.Width, cfg.C.Height)
	return cfg.C.Width, cfg.C.Height
}

func main() {
	levelPath := flag.String("level", "", "TMX level file (empty = built-in level)")
	seed := flag.Int64("seed", 0, "simulation seed (0 = time-based)")
	noGhost := flag.Bool("noghost", false, "disable best-run ghost playback")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	level := loadLevel(*levelPath)

	store, err := replay.OpenStore("tilerunner")
	if err != nil {
		log.Printf("Warning: recordings will not be persisted: %v", err)
		store = nil
	}

	ebiten.SetWindowSize(cfg.C.Width*2, cfg.C.Height*2)
	ebiten.SetWindowTitle("tilerunner")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	game := &Game{
		scene: scenes.NewPlatformerScene(level, *seed, store, !*noGhost),
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func loadLevel(path string) *leveldata.Level {
	if path == "" {
		return leveldata.DefaultLevel(cfg.Sim.TileSize)
	}
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	level, err := leveldata.LoadLevel(os.DirFS(dir), file)
	if err != nil {
		log.Printf("Warning: could not load level %s, falling back to built-in: %v", path, err)
		return leveldata.DefaultLevel(cfg.Sim.TileSize)
	}
	return level
}
