package replay

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

// Store persists recordings in the platform's data directory. Two slots are
// kept per level: the most recent run, and the best run by score.
type Store struct {
	m *gdata.Manager
}

func lastRunKey(level string) string { return "replay_last_" + level }
func bestRunKey(level string) string { return "replay_best_" + level }

// OpenStore opens the persistent recording store for the given app name.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("replay: open store: %w", err)
	}
	return &Store{m: m}, nil
}

// Commit stores a finished recording: it always becomes the last run, and
// replaces the best run when it scores higher (or no best run exists yet).
// Returns whether a new best was set.
func (st *Store) Commit(rec *Recording) (bool, error) {
	if err := st.save(lastRunKey(rec.Level), rec); err != nil {
		return false, err
	}

	best, err := st.load(bestRunKey(rec.Level))
	if err != nil {
		// A corrupt best slot should not block saving a fresh one.
		log.Printf("Warning: could not read best run, overwriting: %v", err)
		best = nil
	}
	if best != nil && best.Score >= rec.Score {
		return false, nil
	}
	if err := st.save(bestRunKey(rec.Level), rec); err != nil {
		return false, err
	}
	return true, nil
}

// LastRun returns the most recent committed recording for a level, or nil
// when none exists.
func (st *Store) LastRun(level string) (*Recording, error) {
	return st.load(lastRunKey(level))
}

// BestRun returns the highest-scoring committed recording for a level, or nil
// when none exists.
func (st *Store) BestRun(level string) (*Recording, error) {
	return st.load(bestRunKey(level))
}

func (st *Store) save(key string, rec *Recording) error {
	data, err := EncodeRecording(rec)
	if err != nil {
		return err
	}
	if err := st.m.SaveItem(key, data); err != nil {
		return fmt.Errorf("replay: save %s: %w", key, err)
	}
	return nil
}

func (st *Store) load(key string) (*Recording, error) {
	data, err := st.m.LoadItem(key)
	if err != nil {
		return nil, fmt.Errorf("replay: load %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return DecodeRecording(data)
}
