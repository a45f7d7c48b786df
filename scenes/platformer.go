// Package scenes wires the simulation core to the ebitengine loop: fixed-step
// time accumulation, input sampling, replay recording, ghost playback, and
// rendering.
package scenes

import (
	"image/color"
	"log"
	"time"

	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/leveldata"
	"github.com/automoto/tilerunner/replay"
	"github.com/automoto/tilerunner/sim"
	"github.com/automoto/tilerunner/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PlatformerScene runs one level: the live simulation, its recorder, and an
// optional ghost replaying the best stored run.
type PlatformerScene struct {
	level *leveldata.Level
	store *replay.Store

	sim      *sim.Simulation
	recorder *replay.Recorder
	ghost    *replay.Ghost

	input  systems.InputSampler
	camera systems.Camera

	ghostEnabled bool
	ghostFade    *gween.Tween

	baseSeed int64
	runs     int64

	lastTime    time.Time
	accumulator float64
	runOver     bool
}

// NewPlatformerScene starts the first run. store may be nil, in which case
// recordings are neither persisted nor replayed.
func NewPlatformerScene(level *leveldata.Level, seed int64, store *replay.Store, ghostEnabled bool) *PlatformerScene {
	ps := &PlatformerScene{
		level:        level,
		store:        store,
		baseSeed:     seed,
		ghostEnabled: ghostEnabled,
	}
	ps.startRun()
	return ps
}

// startRun builds a fresh simulation and recorder, and a ghost of the stored
// best run when one exists for this level.
func (ps *PlatformerScene) startRun() {
	seed := ps.baseSeed + ps.runs
	ps.runs++

	ps.sim = sim.New(ps.level, seed)
	ps.recorder = replay.NewRecorder(ps.sim)
	ps.runOver = false
	ps.accumulator = 0
	ps.lastTime = time.Time{}

	if players := ps.sim.PlayerEntries(); len(players) > 0 {
		obj := components.Object.Get(players[0])
		ps.camera.Snap(obj.X, obj.Y)
	}

	ps.ghost = nil
	ps.ghostFade = nil
	if !ps.ghostEnabled || ps.store == nil {
		return
	}
	best, err := ps.store.BestRun(ps.level.Name)
	if err != nil {
		log.Printf("Warning: could not load best run: %v", err)
		return
	}
	if best == nil {
		return
	}
	ghost, err := replay.NewGhost(ps.level, best)
	if err != nil {
		log.Printf("Warning: could not start ghost playback: %v", err)
		return
	}
	ps.ghost = ghost
	ps.ghostFade = gween.New(0, cfg.Replay.GhostAlpha, cfg.Replay.GhostFadeSeconds, ease.OutQuad)
}

func (ps *PlatformerScene) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		// Abort: the run restarts without being committed to the store.
		ps.startRun()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		ps.ghostEnabled = !ps.ghostEnabled
		if !ps.ghostEnabled {
			ps.ghost = nil
		}
	}

	now := time.Now()
	if ps.lastTime.IsZero() {
		ps.lastTime = now
	}
	frameDt := now.Sub(ps.lastTime).Seconds()
	ps.lastTime = now
	ps.accumulator += frameDt

	tickDt := 1.0 / float64(cfg.Sim.TickRate)
	steps := 0
	for ps.accumulator >= tickDt {
		if steps >= cfg.Sim.MaxStepsPerFrame {
			// Drop the backlog instead of spiraling after a stall.
			ps.accumulator = 0
			break
		}
		ps.step()
		ps.accumulator -= tickDt
		steps++
	}

	if ps.ghostFade != nil {
		if _, done := ps.ghostFade.Update(float32(frameDt)); done {
			ps.ghostFade = nil
		}
	}

	if players := ps.sim.PlayerEntries(); len(players) > 0 {
		e := players[0]
		obj := components.Object.Get(e)
		ph := components.Physics.Get(e)
		w, h := ps.level.Grid.PixelBounds()
		ps.camera.Update(obj.X, obj.Y, ph.Velocity.X, ph.FacingLeft, w, h)
	}
}

// step advances exactly one simulation tick, feeding the recorder and the
// ghost in lockstep.
func (ps *PlatformerScene) step() {
	if ps.runOver {
		return
	}

	it := ps.input.Sample()
	ps.recorder.Record(it)
	ps.sim.SetIntent(0, it)
	ps.sim.Step()

	if ps.ghost != nil {
		ps.ghost.Step()
	}

	if ps.runEnded() {
		ps.finishRun()
		ps.runOver = true
	}
}

// runEnded reports whether the run is complete: the player is out of lives or
// every coin is collected.
func (ps *PlatformerScene) runEnded() bool {
	players := ps.sim.PlayerEntries()
	if len(players) == 0 {
		return true
	}
	if components.State.Get(players[0]).Current == cfg.StateDead {
		return true
	}
	coins := ps.sim.CoinEntries()
	if len(coins) == 0 {
		return false
	}
	for _, e := range coins {
		if !components.Coin.Get(e).Collected {
			return false
		}
	}
	return true
}

// finishRun seals the recording and commits it to the store.
func (ps *PlatformerScene) finishRun() {
	if ps.recorder == nil || ps.store == nil {
		return
	}
	rec := ps.recorder.Finish()
	ps.recorder = nil
	if rec.Ticks() == 0 {
		return
	}
	newBest, err := ps.store.Commit(rec)
	if err != nil {
		log.Printf("Warning: could not save recording: %v", err)
		return
	}
	if newBest {
		log.Printf("new best run: score %d over %d ticks", rec.Score, rec.Ticks())
	}
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	camX, camY := ps.camera.Offset()
	systems.DrawLevel(screen, ps.level.Grid, camX, camY)

	if ps.ghost != nil && !ps.ghost.Done() {
		alpha := cfg.Replay.GhostAlpha
		if ps.ghostFade != nil {
			alpha, _ = ps.ghostFade.Update(0)
		}
		systems.DrawGhostSim(screen, ps.ghost.Sim(), camX, camY, alpha)
	}

	systems.DrawSim(screen, ps.sim, camX, camY)
	systems.DrawHUD(screen, ps.sim, ps.ghost != nil && !ps.ghost.Done())
}
