package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

type memoryEntry struct {
	record    *sessionRecord
	expiresAt time.Time
}

type memoryLock struct {
	token string
	until time.Time
}

// memoryStore implements adapter.SessionStore in process memory.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]memoryEntry
	locks    map[uuid.UUID]memoryLock
	ttl      time.Duration
	lockTTL  time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory session store, used when no Redis is configured.
func NewMemoryStore(ttl, lockTTL time.Duration) adapter.SessionStore {
	return newMemoryStore(ttl, lockTTL, time.Now)
}

func newMemoryStore(ttl, lockTTL time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		sessions: make(map[uuid.UUID]memoryEntry),
		locks:    make(map[uuid.UUID]memoryLock),
		ttl:      ttl,
		lockTTL:  lockTTL,
		now:      now,
	}
}

// Save creates or replaces a session and refreshes its expiry.
func (s *memoryStore) Save(ctx context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memoryEntry{
		record:    recordFromEntity(session),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Get retrieves a session, returning a copy callers may modify.
func (s *memoryStore) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, domainerror.ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, domainerror.ErrSessionNotFound
	}
	return entry.record.toEntity(), nil
}

// Delete removes a session and its lock.
func (s *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	delete(s.locks, id)
	return nil
}

// Lock acquires the session input lock.
func (s *memoryStore) Lock(ctx context.Context, id uuid.UUID) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[id]; ok && now.Before(held.until) {
		return "", false, nil
	}
	token := uuid.NewString()
	s.locks[id] = memoryLock{token: token, until: now.Add(s.lockTTL)}
	return token, true, nil
}

// Unlock releases the session input lock if token still owns it.
func (s *memoryStore) Unlock(ctx context.Context, id uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if held, ok := s.locks[id]; ok && held.token == token {
		delete(s.locks, id)
	}
	return nil
}
