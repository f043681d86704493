package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RedisTokenStore struct {
	redis RedisClient
}

func NewRedisTokenStore(redis RedisClient) *RedisTokenStore {
	return &RedisTokenStore{
		redis: redis,
	}
}

func (s *RedisTokenStore) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (s *RedisTokenStore) ReleaseLock(ctx context.Context, key string) error {
	return s.redis.Del(ctx, key).Err()
}

func (s *RedisTokenStore) SetToken(ctx context.Context, key string, token Token, expiration time.Duration) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}

	return nil
}

func (s *RedisTokenStore) GetToken(ctx context.Context, key string) (Token, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Token{}, ErrTokenNotFound
		}
		return Token{}, err
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return Token{}, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return token, nil
}
