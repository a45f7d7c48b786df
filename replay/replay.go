// Package replay records input timelines and plays them back as ghosts. A
// recording stores the per-tick input intents plus a LITE snapshot every
// interval ticks; playback re-simulates from the same seed and hard-snaps the
// ghost onto the recorded track at each snapshot tick, so accumulated drift
// can never exceed one interval.
package replay

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/tilerunner/components"
	cfg "github.com/automoto/tilerunner/config"
	"github.com/automoto/tilerunner/sim"
	"github.com/automoto/tilerunner/snapshot"
)

// Version is the recording schema version.
const Version = 1

// Recording is a complete replayable run of a single-player session.
type Recording struct {
	Version  int    `json:"version"`
	Level    string `json:"level"`
	Seed     int64  `json:"seed"`
	Interval int    `json:"interval"`
	Score    int    `json:"score"`

	// Inputs[t] is the intent consumed by tick t.
	Inputs []components.Intent `json:"inputs"`

	// Snapshots are LITE captures taken before ticks 0, Interval,
	// 2*Interval, ... Each carries its own tick index.
	Snapshots []*snapshot.Snapshot `json:"snapshots"`
}

// Ticks returns the recording length in ticks.
func (r *Recording) Ticks() int { return len(r.Inputs) }

// Validate checks the structural invariants a recording must satisfy before
// playback: known version, positive interval, and every snapshot sitting on
// an interval boundary within the input timeline.
func (r *Recording) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("replay: unsupported recording version %d", r.Version)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("replay: invalid snapshot interval %d", r.Interval)
	}
	for _, snap := range r.Snapshots {
		if snap == nil {
			return fmt.Errorf("replay: nil snapshot in recording")
		}
		if snap.Tick%int64(r.Interval) != 0 {
			return fmt.Errorf("replay: snapshot at tick %d off the %d-tick interval",
				snap.Tick, r.Interval)
		}
		if snap.Tick >= int64(len(r.Inputs)) {
			return fmt.Errorf("replay: snapshot at tick %d beyond input timeline (%d ticks)",
				snap.Tick, len(r.Inputs))
		}
	}
	return nil
}

// EncodeRecording serializes a recording to its JSON wire form.
func EncodeRecording(r *Recording) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// DecodeRecording parses and validates a serialized recording.
func DecodeRecording(data []byte) (*Recording, error) {
	var r Recording
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Recorder accumulates a recording while its simulation runs. Call Record
// with the intent for the upcoming tick, before stepping the simulation.
type Recorder struct {
	sim *sim.Simulation
	rec *Recording
}

// NewRecorder starts recording the given simulation from its current tick,
// which is normally zero.
func NewRecorder(s *sim.Simulation) *Recorder {
	return &Recorder{
		sim: s,
		rec: &Recording{
			Version:  Version,
			Level:    s.LevelName(),
			Seed:     s.Seed(),
			Interval: cfg.Replay.SnapshotInterval,
		},
	}
}

// Record captures the intent the next Step will consume, plus a LITE snapshot
// when the current tick sits on an interval boundary.
func (r *Recorder) Record(it components.Intent) {
	if r.sim.Tick()%int64(r.rec.Interval) == 0 {
		r.rec.Snapshots = append(r.rec.Snapshots, snapshot.Capture(r.sim, snapshot.Lite))
	}
	r.rec.Inputs = append(r.rec.Inputs, it)
}

// Finish seals and returns the recording.
func (r *Recorder) Finish() *Recording {
	r.rec.Score = r.sim.Score()
	return r.rec
}
