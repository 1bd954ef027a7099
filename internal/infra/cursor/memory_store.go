package cursor

import (
	"context"
	"sync"
)

// MemoryStore keeps the cursor in process memory. Useful for tests and for
// deployments that want every pass to be a full resync.
type MemoryStore struct {
	mu           sync.Mutex
	lastRecordID string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRecordID, nil
}

func (s *MemoryStore) Save(ctx context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRecordID = recordID
	return nil
}
