package knowledge

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// InMemoryBackend is a process-local Backend guarded by a single mutex —
// adequate per §5 of the spec, which assumes one knowledge base writer per
// character and treats the knowledge base as read-mostly shared state.
type InMemoryBackend struct {
	mu   sync.RWMutex
	data map[string]inMemoryEntry
}

type inMemoryEntry struct {
	raw    []byte
	expiry time.Time // zero means no expiry
}

// NewInMemoryBackend returns an empty backend.
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{data: make(map[string]inMemoryEntry)}
}

func (m *InMemoryBackend) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var expiry time.Time
	if ttl > 0 {
		expiry = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = inMemoryEntry{raw: raw, expiry: expiry}
	m.mu.Unlock()
	return nil
}

func (m *InMemoryBackend) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !entry.expiry.IsZero() && time.Now().After(entry.expiry) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *InMemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *InMemoryBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	now := time.Now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for key, entry := range m.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if !entry.expiry.IsZero() && now.After(entry.expiry) {
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

func (m *InMemoryBackend) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !entry.expiry.IsZero() && time.Now().After(entry.expiry) {
		return false, nil
	}
	return true, nil
}
