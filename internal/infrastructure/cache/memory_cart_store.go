package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
)

// MemoryCartStore is an in-memory cart.Store for tests and single-node
// development. Snapshots go through the same serialization path as the
// Redis store so schema handling is exercised identically.
type MemoryCartStore struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID][]byte
}

// NewMemoryCartStore creates an empty in-memory cart store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		snapshots: make(map[uuid.UUID][]byte),
	}
}

// Load reads the user's cart snapshot; (nil, nil) when absent or unreadable
func (s *MemoryCartStore) Load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.snapshots[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	c, err := cart.UnmarshalSnapshot(data)
	if err != nil {
		s.mu.Lock()
		delete(s.snapshots, userID)
		s.mu.Unlock()
		return nil, nil
	}
	return c, nil
}

// Save writes the cart snapshot
func (s *MemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := cart.MarshalSnapshot(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshots[c.UserID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the user's cart snapshot
func (s *MemoryCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	delete(s.snapshots, userID)
	s.mu.Unlock()
	return nil
}

// Put stores raw snapshot bytes, bypassing serialization. Test helper
// for corrupt-snapshot scenarios.
func (s *MemoryCartStore) Put(userID uuid.UUID, data []byte) {
	s.mu.Lock()
	s.snapshots[userID] = data
	s.mu.Unlock()
}

// Ensure MemoryCartStore implements cart.Store
var _ cart.Store = (*MemoryCartStore)(nil)
