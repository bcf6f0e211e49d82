package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the credential record in a single Redis hash, one hash
// field per Key. It lets several processes share one session.
type RedisStore struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func (r *RedisStore) Get(ctx context.Context, key Key) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	value, err := r.client.HGet(ctx, r.key, string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %v %v: %w", r.key, key, err)
	}
	return value, value != "", nil
}

func (r *RedisStore) Set(ctx context.Context, key Key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if value == "" {
		return r.Remove(ctx, key)
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key, string(key), value)
		if r.ttl > 0 {
			pipe.Expire(ctx, r.key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset %v %v: %w", r.key, key, err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, key Key) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := r.client.HDel(ctx, r.key, string(key)).Err(); err != nil {
		return fmt.Errorf("redis hdel %v %v: %w", r.key, key, err)
	}
	return nil
}

// NewRedisStore creates a store backed by the hash at key. When ttl is
// positive, every write extends the hash expiry.
func NewRedisStore(client redis.Cmdable, key string, ttl time.Duration) *RedisStore {
	if key == "" {
		key = "portalauth:credentials"
	}
	return &RedisStore{client: client, key: key, ttl: ttl}
}
