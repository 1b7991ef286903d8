package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/kisansetu/schemematch/internal/logger"
)

// Document is the on-disk/on-wire shape of a versioned scheme catalog.
// Individual schemes stay raw so that one malformed entry can be
// skipped without losing the rest.
type Document struct {
	Version string            `json:"version"`
	Schemes []json.RawMessage `json:"schemes"`
}

// Snapshot is one immutable generation of the active catalog. Schemes
// are sorted by ID so every walk over the snapshot is deterministic.
type Snapshot struct {
	Version  string
	Schemes  []*Scheme
	LoadedAt time.Time
	Skipped  int

	byID map[string]*Scheme
}

// Get returns the active scheme with the given ID.
func (s *Snapshot) Get(id string) (*Scheme, bool) {
	sc, ok := s.byID[id]
	return sc, ok
}

// ParseDocument decodes and validates a catalog document. Schemes that
// fail validation or decoding are excluded individually and logged with
// the offending rule index; they never abort the load. Inactive schemes
// are dropped silently.
func ParseDocument(data []byte) (*Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog document: %w", err)
	}

	snap := &Snapshot{
		Version:  doc.Version,
		LoadedAt: time.Now(),
		byID:     make(map[string]*Scheme, len(doc.Schemes)),
	}

	for i, raw := range doc.Schemes {
		var scheme Scheme
		if err := json.Unmarshal(raw, &scheme); err != nil {
			logger.Warn("skipping malformed scheme entry",
				"index", i, "error", err)
			snap.Skipped++
			continue
		}
		if err := ValidateScheme(&scheme); err != nil {
			logger.Warn("skipping invalid scheme",
				"scheme_id", scheme.ID, "error", err)
			snap.Skipped++
			continue
		}
		if !scheme.Active {
			continue
		}
		if _, dup := snap.byID[scheme.ID]; dup {
			logger.Warn("skipping duplicate scheme_id", "scheme_id", scheme.ID)
			snap.Skipped++
			continue
		}
		sc := scheme
		snap.byID[sc.ID] = &sc
		snap.Schemes = append(snap.Schemes, &sc)
	}

	sort.Slice(snap.Schemes, func(a, b int) bool {
		return snap.Schemes[a].ID < snap.Schemes[b].ID
	})

	return snap, nil
}
