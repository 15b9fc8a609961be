// internal/state/mock.go
package state

import (
	"maps"
	"sync"
)

// Mock is an in-memory test double for Manager with injectable failures.
type Mock struct {
	mu      sync.Mutex
	values  map[string]string
	getErr  error
	setErr  error
	sets    int
	flushes int
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{values: make(map[string]string)}
}

func (m *Mock) GetPreference(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Mock) SetPreference(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *Mock) Flush() error {
	m.mu.Lock()
	m.flushes++
	m.mu.Unlock()
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Test helpers

// Seed stores a raw value, bypassing failure injection.
func (m *Mock) Seed(key, value string) {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
}

// Value returns the raw stored value for key.
func (m *Mock) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Values returns a copy of everything stored.
func (m *Mock) Values() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values)
}

func (m *Mock) FailGet(err error) {
	m.mu.Lock()
	m.getErr = err
	m.mu.Unlock()
}

func (m *Mock) FailSet(err error) {
	m.mu.Lock()
	m.setErr = err
	m.mu.Unlock()
}

// SetCalls counts SetPreference calls, including failed ones.
func (m *Mock) SetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *Mock) FlushCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
