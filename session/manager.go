package session

import (
	"log"
	"sync"
	"time"
)

// Manager owns all live sessions, keyed by session id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, or a fresh one when id is empty
// or unknown. The caller should echo the returned session's id back to
// the client.
func (m *Manager) GetOrCreate(id string) *Session {
	if id != "" {
		m.mu.RLock()
		s, found := m.sessions[id]
		m.mu.RUnlock()
		if found {
			s.Touch()
			return s
		}
	}

	s := newSession()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("Created session %s", s.ID)
	return s
}

// Get returns the session for id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// EvictIdle drops sessions idle longer than ttl, cancelling any in-flight
// generation work they still own.
func (m *Manager) EvictIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			s.Stop()
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("Evicted %d idle sessions", evicted)
	}
	return evicted
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
