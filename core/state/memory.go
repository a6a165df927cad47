package state

import (
	"sync"

	"github.com/tristendillon/gohb/core/models"
)

// MemoryStore keeps state for the life of the process only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) GetBody(route models.Route) string {
	return m.get(BodyKey(route))
}

func (m *MemoryStore) SetBody(route models.Route, text string) error {
	m.set(BodyKey(route), text)
	return nil
}

func (m *MemoryStore) GetToken() string {
	return m.get(TokenKey)
}

func (m *MemoryStore) SetToken(text string) error {
	m.set(TokenKey, text)
	return nil
}

func (m *MemoryStore) get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

func (m *MemoryStore) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
