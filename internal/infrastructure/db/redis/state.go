package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clubhub/events-api/internal/core/domain"
)

// StateStore persists single-use OAuth state nonces in Redis.
// Key format: oauth_state:<provider>:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue stores a fresh nonce for provider that expires after ttl.
func (s *StateStore) Issue(ctx context.Context, provider string, ttl time.Duration) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, s.key(provider, state), "1", ttl).Err(); err != nil {
		return "", fmt.Errorf("state issue: %w", err)
	}
	return state, nil
}

// Validate consumes the nonce atomically; replay and expiry both fail with
// ErrInvalidState.
func (s *StateStore) Validate(ctx context.Context, provider, state string) error {
	err := s.client.GetDel(ctx, s.key(provider, state)).Err()
	if errors.Is(err, redis.Nil) {
		return domain.ErrInvalidState
	}
	if err != nil {
		return fmt.Errorf("state validate: %w", err)
	}
	return nil
}

func (s *StateStore) key(provider, state string) string {
	return fmt.Sprintf("oauth_state:%s:%s", provider, state)
}
