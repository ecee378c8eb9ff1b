// Package session tracks one wizard per authenticated client and the JWTs
// that bind requests to it.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"remesa/internal/services/wizard"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 30 * time.Minute

// Entry is one live session.
type Entry struct {
	ID       string
	Wizard   *wizard.Wizard
	lastSeen time.Time
}

// Manager owns the session table. Expired sessions are reaped in the
// background and their wizards closed.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Entry
	ttl      time.Duration
	factory  func() *wizard.Wizard
	done     chan struct{}
}

// NewManager starts a session table with its reaper. factory builds the
// wizard backing each new session.
func NewManager(ttl time.Duration, factory func() *wizard.Wizard) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if factory == nil {
		panic("session: wizard factory is required")
	}
	m := &Manager{
		sessions: make(map[string]*Entry),
		ttl:      ttl,
		factory:  factory,
		done:     make(chan struct{}),
	}
	go m.reap()
	return m
}

// Create opens a new session with a fresh wizard.
func (m *Manager) Create() *Entry {
	entry := &Entry{
		ID:       uuid.NewString(),
		Wizard:   m.factory(),
		lastSeen: time.Now(),
	}
	m.mu.Lock()
	m.sessions[entry.ID] = entry
	m.mu.Unlock()
	return entry
}

// Get returns a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry, true
}

// Delete closes and removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		entry.Wizard.Close()
	}
}

// Stop halts the reaper and closes every session.
func (m *Manager) Stop() {
	close(m.done)
	m.mu.Lock()
	entries := make([]*Entry, 0, len(m.sessions))
	for id, entry := range m.sessions {
		entries = append(entries, entry)
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	for _, entry := range entries {
		entry.Wizard.Close()
	}
}

func (m *Manager) reap() {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			var expired []*Entry
			m.mu.Lock()
			for id, entry := range m.sessions {
				if now.Sub(entry.lastSeen) > m.ttl {
					expired = append(expired, entry)
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
			for _, entry := range expired {
				entry.Wizard.Close()
			}
		}
	}
}
