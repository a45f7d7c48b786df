package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/leveldata"
	"github.com/automoto/tilerunner/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
)

// Flat-rectangle renderer. Everything is drawn straight from simulation
// state; there is no interpolation between ticks.

var (
	colorStone      = color.RGBA{92, 92, 104, 255}
	colorGrass      = color.RGBA{60, 140, 70, 255}
	colorPlayer     = color.RGBA{70, 130, 230, 255}
	colorPlayerHit  = color.RGBA{240, 240, 240, 255}
	colorPlayerDash = color.RGBA{150, 200, 255, 255}
	colorEnemy      = color.RGBA{210, 70, 60, 255}
	colorCoin       = color.RGBA{235, 200, 60, 255}
	colorShotPlayer = color.RGBA{250, 250, 160, 255}
	colorShotEnemy  = color.RGBA{250, 120, 200, 255}
)

// DrawLevel renders the visible slice of the tile grid.
func DrawLevel(screen *ebiten.Image, grid *leveldata.Grid, camX, camY float64) {
	ts := grid.TileSize()
	tsf := float64(ts)

	// Visible cell range from the camera translation.
	x0 := int(-camX) / ts
	y0 := int(-camY) / ts
	x1 := x0 + cfg.C.Width/ts + 2
	y1 := y0 + cfg.C.Height/ts + 2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			var c color.RGBA
			switch grid.At(cx, cy) {
			case leveldata.TileStone:
				c = colorStone
			case leveldata.TileGrass:
				c = colorGrass
			default:
				continue
			}
			vector.DrawFilledRect(screen,
				float32(float64(cx)*tsf+camX), float32(float64(cy)*tsf+camY),
				float32(ts), float32(ts), c, false)
		}
	}
}

// DrawSim renders the simulation's entities at full opacity.
func DrawSim(screen *ebiten.Image, s *sim.Simulation, camX, camY float64) {
	drawEntities(screen, s, camX, camY, 1)
}

// DrawGhostSim renders a shadow simulation as a translucent overlay.
func DrawGhostSim(screen *ebiten.Image, s *sim.Simulation, camX, camY float64, alpha float32) {
	if alpha <= 0 {
		return
	}
	drawEntities(screen, s, camX, camY, alpha)
}

func drawEntities(screen *ebiten.Image, s *sim.Simulation, camX, camY float64, alpha float32) {
	for _, e := range s.CoinEntries() {
		if components.Coin.Get(e).Collected {
			continue
		}
		drawObject(screen, e, camX, camY, fade(colorCoin, alpha))
	}
	for _, e := range s.EnemyEntries() {
		if components.State.Get(e).Current == cfg.StateDead {
			continue
		}
		drawObject(screen, e, camX, camY, fade(colorEnemy, alpha))
	}
	for _, e := range s.ProjectileEntries() {
		c := colorShotPlayer
		if components.Projectile.Get(e).Owner == components.OwnerEnemy {
			c = colorShotEnemy
		}
		drawObject(screen, e, camX, camY, fade(c, alpha))
	}
	for _, e := range s.PlayerEntries() {
		st := components.State.Get(e)
		if st.Current == cfg.StateDead {
			continue
		}
		c := colorPlayer
		switch st.Current {
		case cfg.StateHit:
			// Blink during hit stun.
			if st.Timer%8 < 4 {
				c = colorPlayerHit
			}
		case cfg.StateDash:
			c = colorPlayerDash
		}
		drawObject(screen, e, camX, camY, fade(c, alpha))
	}
}

func drawObject(screen *ebiten.Image, e *donburi.Entry, camX, camY float64, c color.RGBA) {
	obj := components.Object.Get(e)
	vector.DrawFilledRect(screen,
		float32(obj.X+camX), float32(obj.Y+camY),
		float32(obj.W), float32(obj.H), c, false)
}

func fade(c color.RGBA, alpha float32) color.RGBA {
	if alpha >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float32(c.R) * alpha),
		G: uint8(float32(c.G) * alpha),
		B: uint8(float32(c.B) * alpha),
		A: uint8(float32(c.A) * alpha),
	}
}

// DrawHUD prints the run counters in the top-left corner.
func DrawHUD(screen *ebiten.Image, s *sim.Simulation, ghostActive bool) {
	lives := 0
	if players := s.PlayerEntries(); len(players) > 0 {
		lives = components.Player.Get(players[0]).Lives
	}
	msg := fmt.Sprintf("score %d  lives %d  tick %d", s.Score(), lives, s.Tick())
	if ghostActive {
		msg += "  [ghost]"
	}
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}
