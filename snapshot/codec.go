package snapshot

import (
	"encoding/json"
	"fmt"
	"log"
)

// Encode serializes a snapshot to its JSON wire form.
func Encode(snap *Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot token, migrating older schema versions in place.
func Decode(data []byte) (*Snapshot, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}

	switch probe.Version {
	case Version:
	case 1:
		migrated, err := migrateV1(data)
		if err != nil {
			return nil, err
		}
		data = migrated
	default:
		return nil, fmt.Errorf("snapshot: unsupported version %d", probe.Version)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &snap, nil
}

// migrateV1 upgrades a version 1 token: the player field "lifes" was renamed
// to "lives" in version 2. Everything else is shape-compatible.
func migrateV1(data []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("snapshot: migrate v1: %w", err)
	}

	var players []map[string]json.RawMessage
	if pd, ok := raw["players"]; ok {
		if err := json.Unmarshal(pd, &players); err != nil {
			return nil, fmt.Errorf("snapshot: migrate v1: players: %w", err)
		}
		for _, p := range players {
			if v, ok := p["lifes"]; ok {
				p["lives"] = v
				delete(p, "lifes")
			}
		}
		pd, err := json.Marshal(players)
		if err != nil {
			return nil, fmt.Errorf("snapshot: migrate v1: players: %w", err)
		}
		raw["players"] = pd
	}
	raw["version"] = json.RawMessage(fmt.Sprintf("%d", Version))

	log.Printf("Warning: migrated snapshot from schema version 1")
	out, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot: migrate v1: %w", err)
	}
	return out, nil
}
