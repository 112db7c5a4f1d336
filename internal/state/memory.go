package state

import (
	"context"
	"sync"
)

// MemoryPersister keeps snapshots in memory.
type MemoryPersister struct {
	mu   sync.Mutex
	data map[string][]byte

	// SaveErr, when set, is returned by every Save.
	SaveErr error
	saves   int
}

// NewMemoryPersister returns an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: map[string][]byte{}}
}

// Load implements Persister.
func (m *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements Persister.
func (m *MemoryPersister) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.data[key] = buf
	m.saves++
	return nil
}

// Saves returns the number of successful saves.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
