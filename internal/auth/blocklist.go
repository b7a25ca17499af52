// File: internal/auth/blocklist.go
package auth

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TokenBlocklistService defines the interface for the logout blocklist.
type TokenBlocklistService interface {
	// AddToBlocklist adds a token's JTI (JWT ID) to the blocklist until it would expire.
	AddToBlocklist(ctx context.Context, jti string, expiresAt time.Time) error
	// IsBlocklisted checks if a token's JTI is in the blocklist.
	IsBlocklisted(ctx context.Context, jti string) (bool, error)
}

// InMemoryBlocklistService is an in-memory implementation of TokenBlocklistService.
// Entries expire on their own, so no sweeper job is needed.
type InMemoryBlocklistService struct {
	mu    sync.RWMutex
	cache *gocache.Cache
}

// NewInMemoryBlocklistService creates a new in-memory blocklist service.
func NewInMemoryBlocklistService() *InMemoryBlocklistService {
	return &InMemoryBlocklistService{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// AddToBlocklist records a token JTI for exactly as long as the token would
// otherwise remain valid. Already-expired tokens are ignored.
func (s *InMemoryBlocklistService) AddToBlocklist(ctx context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	duration := time.Until(expiresAt)
	if duration <= 0 {
		return nil
	}

	s.cache.Set(jti, true, duration)
	return nil
}

// IsBlocklisted checks if a token JTI exists in the in-memory cache.
func (s *InMemoryBlocklistService) IsBlocklisted(ctx context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.cache.Get(jti)
	return found, nil
}
