package tokens

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

// Store blacklists JWT IDs until the token's natural expiry. When Redis is
// unavailable the store degrades to a no-op: tokens stay valid until expiry.
type Store struct {
	client *redis.Client
}

// NewStore returns a Store backed by the given Redis client. A nil client is
// allowed and produces a no-op store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Revoke blacklists the given JTI for the remaining token lifetime.
func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s == nil || s.client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		// Token already expired; a short entry still shields against clock skew.
		ttl = time.Minute
	}
	return s.client.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the given JTI has been blacklisted.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s == nil || s.client == nil || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
