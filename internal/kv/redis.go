package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
	Quota    int64
}

// RedisStore keeps values as plain strings under a key prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	quota  int64
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("kv: redis ping %s: %w", opts.Addr, err)
	}
	return newRedisStore(rdb, opts.Prefix, opts.Quota), nil
}

func newRedisStore(rdb *redis.Client, prefix string, quota int64) *RedisStore {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &RedisStore{rdb: rdb, prefix: prefix, quota: quota}
}

// Get reads the value for key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: redis get %s: %w", key, err)
	}
	return val, nil
}

// Set stores value. The quota is checked per value before any network call.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if int64(len(key)+len(value)) > s.quota {
		return fmt.Errorf("%w: %s needs %d bytes", ErrQuotaExceeded, key, len(value))
	}
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv: redis set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("kv: redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
