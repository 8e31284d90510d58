// Package store provides the session-id mapping behind the game service:
// an in-memory map for single-node deployments and a Postgres-backed variant
// that survives restarts.
package store

import (
	"context"
	"sync"

	"finlife/internal/game"
)

// Memory keeps sessions in a mutex-guarded map. Get and Put exchange copies,
// so a caller's in-flight mutation never leaks into the stored state until it
// commits with Put.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: map[string]*game.Session{}}
}

func (m *Memory) Put(_ context.Context, session *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = cloneSession(session)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return game.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func cloneSession(session *game.Session) *game.Session {
	clone := *session
	clone.Loans = make([]game.Loan, len(session.Loans))
	copy(clone.Loans, session.Loans)
	clone.LifeEvents = make([]string, len(session.LifeEvents))
	copy(clone.LifeEvents, session.LifeEvents)
	return &clone
}
