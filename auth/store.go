package auth

import (
	"context"
	"sync"
	"time"
)

// Pair is one issued access/refresh credential pair. At most one pair is
// active per principal: issuing a new one replaces whatever was stored.
type Pair struct {
	Token                  string    `json:"token"`
	TokenExpiration        time.Time `json:"tokenExpiration"`
	RefreshToken           string    `json:"refreshToken"`
	RefreshTokenExpiration time.Time `json:"refreshTokenExpiration"`
}

// CredentialStore maps a username to its active credential pair. The
// compare-and-swap is what makes concurrent refreshes safe: only the caller
// holding the currently stored refresh token wins the rotation.
type CredentialStore interface {
	Get(ctx context.Context, username string) (Pair, bool, error)
	Put(ctx context.Context, username string, p Pair) error
	// CompareAndSwap replaces the stored pair only when the stored refresh
	// token equals oldRefresh. It reports whether the swap happened.
	CompareAndSwap(ctx context.Context, username, oldRefresh string, p Pair) (bool, error)
	Delete(ctx context.Context, username string) error
}

// MemoryStore is the process-local CredentialStore. Suitable for a single
// instance; the Redis store backs multi-instance deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	pairs map[string]Pair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pairs: make(map[string]Pair)}
}

func (s *MemoryStore) Get(_ context.Context, username string) (Pair, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pairs[username]
	return p, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, username string, p Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[username] = p
	return nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, username, oldRefresh string, p Pair) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.pairs[username]
	if !ok || cur.RefreshToken != oldRefresh {
		return false, nil
	}
	s.pairs[username] = p
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairs, username)
	return nil
}
