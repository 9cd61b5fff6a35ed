package roster

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const storeFileName = "rosters.json"

// FileStore persists the roster collection to a single JSON file.
type FileStore struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileStore creates a file-backed store rooted at dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dataDir, storeFileName)
}

// Load reads the snapshot from disk. A missing file is a first run and
// yields an empty snapshot.
func (s *FileStore) Load(_ context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Rosters == nil {
		snap.Rosters = make(map[string]json.RawMessage)
	}
	return &snap, nil
}

// Save writes the snapshot to disk.
func (s *FileStore) Save(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0644)
}
