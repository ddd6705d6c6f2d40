package repository

import (
	"context"
	"sync"

	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/quiz"
)

// MemorySessionRepository keeps sessions in process memory. It is the
// default store for a single-instance deployment and for tests.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*quiz.Session
}

// NewMemorySessionRepository creates an empty in-memory session store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*quiz.Session)}
}

// Get returns the session with the given id.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*quiz.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return session, nil
}

// Save stores the session, overwriting any prior value.
func (r *MemorySessionRepository) Save(_ context.Context, session *quiz.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
	return nil
}

// Delete removes the session; deleting an unknown id is not an error.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
