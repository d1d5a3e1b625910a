package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
)

const defaultRedisKey = "stylegenie:session"

// RedisStore keeps the session record in Redis. Useful when several
// headless processes (bots, schedulers) share one StyleGenie login.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed store under the default key.
func NewRedisStore(client redis.UniversalClient, logger *slog.Logger) (*RedisStore, error) {
	return NewRedisStoreWithKey(client, defaultRedisKey, logger)
}

// NewRedisStoreWithKey creates a Redis-backed store under a custom key,
// letting several accounts coexist in one Redis.
func NewRedisStoreWithKey(client redis.UniversalClient, key string, logger *slog.Logger) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("state: redis client is required")
	}
	if key == "" {
		return nil, errors.New("state: redis key is required")
	}
	if logger == nil {
		return nil, errors.New("state: logger is required")
	}
	return &RedisStore{client: client, key: key, logger: logger}, nil
}

func (s *RedisStore) Load(ctx context.Context) (auth.State, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.State{}, nil
		}
		return auth.State{}, fmt.Errorf("state: redis get: %w", err)
	}

	var loaded auth.State
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		s.logger.WarnContext(ctx, "session record is corrupt, starting logged out",
			"key", s.key, "error", err)
		return auth.State{}, nil
	}
	return loaded, nil
}

func (s *RedisStore) Save(ctx context.Context, st auth.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state: marshal session: %w", err)
	}
	// No TTL: the record lives until logout clears it or the refresh token
	// is rejected server-side.
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("state: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("state: redis del: %w", err)
	}
	return nil
}
