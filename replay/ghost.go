package replay

import (
	"fmt"
	"log"

	"github.com/automoto/tilerunner/leveldata"
	"github.com/automoto/tilerunner/sim"
	"github.com/automoto/tilerunner/snapshot"
)

// Ghost replays a recording inside its own shadow simulation. The shadow
// world runs the full tick pipeline from the recorded seed, so enemies and
// projectiles reappear exactly as they did in the original run; the recorded
// LITE snapshots then pin the player track to the original at every interval
// boundary.
type Ghost struct {
	rec   *Recording
	sim   *sim.Simulation
	snaps map[int64]*snapshot.Snapshot
	done  bool
}

// NewGhost builds a ghost for a recording made on the given level.
func NewGhost(level *leveldata.Level, rec *Recording) (*Ghost, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if rec.Level != level.Name {
		return nil, fmt.Errorf("replay: recording for level %q, loaded level is %q",
			rec.Level, level.Name)
	}

	g := &Ghost{
		rec:   rec,
		sim:   sim.New(level, rec.Seed),
		snaps: make(map[int64]*snapshot.Snapshot, len(rec.Snapshots)),
	}
	for _, snap := range rec.Snapshots {
		g.snaps[snap.Tick] = snap
	}
	return g, nil
}

// Step advances the ghost by one tick. Returns false once the recording is
// exhausted; the ghost world then freezes on its final tick.
func (g *Ghost) Step() bool {
	if g.done {
		return false
	}
	t := g.sim.Tick()
	if t >= int64(len(g.rec.Inputs)) {
		g.done = true
		return false
	}

	if t%int64(g.rec.Interval) == 0 {
		if snap, ok := g.snaps[t]; ok {
			g.correct(snap)
		} else if len(g.rec.Snapshots) > 0 {
			// A recording may carry no snapshots at all (best-effort
			// playback), but a hole in an otherwise synced recording is
			// worth flagging.
			log.Printf("Warning: no ghost snapshot at sync tick %d, continuing by re-simulation", t)
		}
	}
	g.sim.SetIntent(0, g.rec.Inputs[t])
	g.sim.Step()
	return true
}

// correct hard-snaps the ghost's players onto the recorded track. The RNG
// stream is deliberately left alone: re-simulation already consumes it in the
// recorded pattern, and overwriting it here would desynchronize the shadow
// world's enemies. A snapshot that does not match the world is skipped with a
// warning — playback degrades to pure re-simulation rather than failing.
func (g *Ghost) correct(snap *snapshot.Snapshot) {
	if snap.Version != snapshot.Version {
		log.Printf("Warning: ghost snapshot at tick %d has version %d, skipping correction",
			snap.Tick, snap.Version)
		return
	}
	players := g.sim.PlayerEntries()
	if len(snap.Players) != len(players) {
		log.Printf("Warning: ghost snapshot at tick %d has %d players, world has %d, skipping correction",
			snap.Tick, len(snap.Players), len(players))
		return
	}
	for i, es := range snap.Players {
		snapshot.ApplyEntity(players[i], es)
	}
}

// Sim exposes the shadow simulation for rendering.
func (g *Ghost) Sim() *sim.Simulation { return g.sim }

// Done reports whether the recording has been fully played back.
func (g *Ghost) Done() bool { return g.done }

// Progress returns playback completion in [0, 1].
func (g *Ghost) Progress() float64 {
	if len(g.rec.Inputs) == 0 {
		return 1
	}
	p := float64(g.sim.Tick()) / float64(len(g.rec.Inputs))
	if p > 1 {
		p = 1
	}
	return p
}
