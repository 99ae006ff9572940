package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"quiz-llm/internal/domain"
)

// ErrSessionNotFound indica que la sesión no existe o ya expiró.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore guarda el estado vivo de cada sesión de test con un TTL.
// No es persistencia entre sesiones: reset o expiración borran todo.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type memoryItem struct {
	session   domain.Session
	expiresAt time.Time
}

type memorySessionStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

// NewMemorySessionStore es el backend por defecto cuando no hay Redis.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		items: make(map[string]memoryItem),
	}
}

func (s *memorySessionStore) Save(_ context.Context, session domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copia profunda en ambos sentidos: el backend de Redis serializa y acá
	// hay que garantizar lo mismo, o los mapas quedarían compartidos entre
	// el store y los callers.
	s.items[session.ID] = memoryItem{
		session:   session.Clone(),
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(s.items, id)
		return domain.Session{}, ErrSessionNotFound
	}
	return item.session.Clone(), nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}
