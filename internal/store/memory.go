package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lumengrid/ledcast/internal/model"
)

// MemoryStore holds the snapshot in process memory. Used when no backend is
// configured and in tests. The snapshot is kept as encoded JSON so that load
// exercises the same round-trip as the real backends.
type MemoryStore struct {
	mu   sync.Mutex
	body []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, snap *model.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.body = body
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.body == nil {
		return nil, ErrNoSnapshot
	}
	var snap model.Snapshot
	if err := json.Unmarshal(s.body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.body = nil
	s.mu.Unlock()
	return nil
}
