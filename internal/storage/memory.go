package storage

import (
	"context"
	"sync"
)

// MemoryMedium is a process-local medium. It also counts writes, which tests
// use to assert persistence behaviour.
type MemoryMedium struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: map[string]string{}}
}

func (m *MemoryMedium) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryMedium) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

func (m *MemoryMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Writes returns the number of Set calls served so far.
func (m *MemoryMedium) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
