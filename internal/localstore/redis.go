package localstore

import (
	"context"
	"time"

	redisclient "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/redis"
)

type redisStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	GuestCartKey(name string) string
}

// RedisBackend stores the record under pf:cart:guest:<key> with an optional TTL.
type RedisBackend struct {
	client redisStore
	ttl    time.Duration
}

func NewRedisBackend(client redisStore, ttl time.Duration) *RedisBackend {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisBackend{client: client, ttl: ttl}
}

func (r *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.GuestCartKey(key))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *RedisBackend) Write(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, r.client.GuestCartKey(key), string(payload), r.ttl)
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.GuestCartKey(key))
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
