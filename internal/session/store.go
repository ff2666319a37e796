// Package session holds the server side of cookie-based authentication: an
// opaque token handed to the browser maps to the resolved principal. Lookup
// is the only operation the rest of the service performs here; authorization
// lives in the authz package.
package session

import (
	"club-service/internal/authz"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Store maps session tokens to principals. It is injected wherever sessions
// are needed so tests can substitute their own instance.
type Store interface {
	// Create stores a new session for the principal and returns the token.
	Create(p authz.Principal) (string, error)
	// Get resolves a token to its principal. A missing, expired, or
	// malformed token resolves to nothing; never to a default principal.
	Get(token string) (authz.Principal, bool)
	// Delete removes the session for the token, if any.
	Delete(token string)
}

type entry struct {
	principal authz.Principal
	createdAt time.Time
}

// MemoryStore is an in-memory session store.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]entry
}

// NewMemoryStore creates a new in-memory session store. Sessions expire ttl
// after creation.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

// Create stores a new session and returns the token.
func (s *MemoryStore) Create(p authz.Principal) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{principal: p, createdAt: time.Now()}
	return token, nil
}

// Get retrieves a session by token, expiring it if past its TTL.
func (s *MemoryStore) Get(token string) (authz.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[token]
	if !ok {
		return authz.Principal{}, false
	}
	if time.Since(e.createdAt) > s.ttl {
		delete(s.sessions, token)
		return authz.Principal{}, false
	}
	return e.principal, true
}

// Delete removes a session by token.
func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
