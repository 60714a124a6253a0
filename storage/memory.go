package storage

import (
	"context"
	"sync"
)

// MemoryMedium keeps values in process memory. A positive quota caps the
// total bytes of keys plus values, the way a browser origin quota does.
type MemoryMedium struct {
	mu    sync.RWMutex
	items map[string]string
	quota int
	used  int
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{items: map[string]string{}}
}

func NewMemoryMediumWithQuota(quota int) *MemoryMedium {
	m := NewMemoryMedium()
	m.quota = quota
	return m
}

func (m *MemoryMedium) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryMedium) SetItem(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	if old, ok := m.items[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}
	m.items[key] = value
	m.used = used
	return nil
}

func (m *MemoryMedium) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.items[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.items, key)
	}
	return nil
}

// Keys returns the stored keys in no particular order.
func (m *MemoryMedium) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys
}
