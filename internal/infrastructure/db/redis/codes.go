package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubhub/events-api/internal/core/domain"
)

// CodeStore persists verification codes in Redis.
// Key format: verify_code:<destination>
type CodeStore struct {
	client *redis.Client
}

// NewCodeStore creates a CodeStore wrapping the given Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

// Put stores the code for destination, replacing any previous one.
func (s *CodeStore) Put(ctx context.Context, destination, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(destination), code, ttl).Err(); err != nil {
		return fmt.Errorf("code put: %w", err)
	}
	return nil
}

// Take consumes the code atomically; expiry and replay both fail with
// ErrInvalidVerificationCode.
func (s *CodeStore) Take(ctx context.Context, destination string) (string, error) {
	code, err := s.client.GetDel(ctx, s.key(destination)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidVerificationCode
	}
	if err != nil {
		return "", fmt.Errorf("code take: %w", err)
	}
	return code, nil
}

func (s *CodeStore) key(destination string) string {
	return fmt.Sprintf("verify_code:%s", destination)
}
