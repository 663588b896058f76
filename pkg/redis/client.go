package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// The package holds one process-wide client; the server only uses redis as a
// small shared key store (idempotency locks and cached responses).
var rdb *redis.Client

const pingTimeout = 5 * time.Second

// Init connects the process-wide client from a redis:// URL and verifies the
// connection with a ping before anything depends on it.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	rdb = c
	return nil
}

// SetClient swaps in a client directly; tests point this at miniredis.
func SetClient(c *redis.Client) {
	rdb = c
}

// Get retrieves a value by key. A missing key returns redis.Nil.
func Get(ctx context.Context, key string) (string, error) {
	return rdb.Get(ctx, key).Result()
}

// Set stores a value under key with an expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return rdb.Set(ctx, key, value, expiration).Err()
}

// SetNX stores a value only if the key is absent; the idempotency lock is
// acquired through this.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, value, expiration).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	return rdb.Del(ctx, key).Err()
}
