package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySessionStore keeps sessions in-process with TTL. Used when no
// Redis address is configured.
type MemorySessionStore struct {
	mu   sync.Mutex
	sess map[string]memorySession
	ttl  time.Duration
	now  func() time.Time
}

type memorySession struct {
	userID    int64
	expiresAt time.Time
}

// NewMemorySessionStore builds an in-memory session store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sess: make(map[string]memorySession),
		ttl:  ttl,
		now:  time.Now,
	}
}

// NewSession creates a session token for a user.
func (s *MemorySessionStore) NewSession(userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sess[token] = memorySession{
		userID:    userID,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// GetUserIDByToken resolves token to user ID, dropping expired sessions.
func (s *MemorySessionStore) GetUserIDByToken(token string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sess[token]
	if !ok {
		return 0, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sess, token)
		return 0, false, nil
	}
	return entry.userID, true, nil
}

// DeleteSession removes a token mapping; idempotent.
func (s *MemorySessionStore) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sess, token)
	return nil
}
