// Package session tracks per-conversation memory across turns.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Memory is the single piece of cross-turn state: the last city the
// conversation resolved. It is only ever overwritten with a non-empty value.
type Memory struct {
	LastCity string
}

// Manager is a concurrency-safe registry of session memories keyed by
// session ID. Each session is written by its own turn only; the map itself
// is shared.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Memory
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Memory)}
}

// Resolve returns the session ID to use and its remembered city. An empty
// or unknown ID opens a fresh session with empty memory.
func (m *Manager) Resolve(id string) (string, string) {
	m.mu.RLock()
	if mem, ok := m.sessions[id]; ok {
		last := mem.LastCity
		m.mu.RUnlock()
		return id, last
	}
	m.mu.RUnlock()

	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if mem, ok := m.sessions[id]; ok {
		return id, mem.LastCity
	}
	m.sessions[id] = &Memory{}
	return id, ""
}

// Remember stores the resolved city for a session. An empty city is a no-op:
// a turn that resolves nothing must never erase existing memory.
func (m *Manager) Remember(id, city string) {
	if city == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	mem, ok := m.sessions[id]
	if !ok {
		mem = &Memory{}
		m.sessions[id] = mem
	}
	mem.LastCity = city
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
