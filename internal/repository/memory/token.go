package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/medtrack/consult-api/internal/repository"
)

type tokenStore struct {
	cache *cache.Cache
}

// NewTokenStore returns a single-process revocation store. Entries evict
// themselves when the revoked token would have expired anyway.
func NewTokenStore() repository.TokenStore {
	return &tokenStore{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (s *tokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.cache.Set(token, struct{}{}, ttl)
	return nil
}

func (s *tokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, found := s.cache.Get(token)
	return found, nil
}
