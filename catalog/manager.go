package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kisansetu/schemematch/internal/logger"
)

// Manager owns the active catalog snapshot. Reload builds a complete
// new snapshot and swaps it in atomically, so in-flight evaluations
// always see one consistent catalog generation and never a partially
// updated one.
type Manager struct {
	store   Store
	current atomic.Pointer[Snapshot]
}

// NewManager creates a manager over the given catalog store. Call
// Reload before serving requests.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}
	m.current.Store(&Snapshot{byID: map[string]*Scheme{}})
	return m
}

// Reload fetches the catalog document from the store, validates it and
// atomically replaces the active snapshot. On error the previous
// snapshot stays active.
func (m *Manager) Reload(ctx context.Context) (*Snapshot, error) {
	data, err := m.store.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	snap, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	m.current.Store(snap)
	logger.Info("catalog loaded",
		"version", snap.Version,
		"schemes", len(snap.Schemes),
		"skipped", snap.Skipped)
	return snap, nil
}

// Snapshot returns the active catalog snapshot. The returned value is
// immutable and safe for concurrent use.
func (m *Manager) Snapshot() *Snapshot {
	return m.current.Load()
}
