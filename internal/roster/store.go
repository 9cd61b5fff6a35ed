package roster

import (
	"context"
	"encoding/json"
	"sync"
)

// Snapshot is the persisted shape of the whole collection: every roster
// in its versioned record form, the active roster's name, and the saved
// image-export settings. It mirrors the browser-storage layout the save
// files originated from.
type Snapshot struct {
	Rosters        map[string]json.RawMessage `json:"rosters"`
	Active         string                     `json:"activeRosterName"`
	ExportSettings json.RawMessage            `json:"imageExportSettings,omitempty"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Rosters: make(map[string]json.RawMessage)}
}

// Store persists the roster collection. Writes are write-through and
// best-effort: a failed write is logged by the caller, not rolled back
// and not retried.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// MemoryStore is an in-memory Store for tests and throwaway sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: NewSnapshot()}
}

// Load returns a copy of the stored snapshot.
func (s *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap), nil
}

// Save replaces the stored snapshot.
func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = copySnapshot(snap)
	return nil
}

func copySnapshot(snap *Snapshot) *Snapshot {
	if snap == nil {
		return NewSnapshot()
	}
	dup := &Snapshot{
		Rosters: make(map[string]json.RawMessage, len(snap.Rosters)),
		Active:  snap.Active,
	}
	for name, rec := range snap.Rosters {
		dup.Rosters[name] = append(json.RawMessage(nil), rec...)
	}
	if snap.ExportSettings != nil {
		dup.ExportSettings = append(json.RawMessage(nil), snap.ExportSettings...)
	}
	return dup
}
