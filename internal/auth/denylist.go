package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "task-tracker:revoked:"

// Denylist records logged-out tokens
type Denylist interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// redisStore is the subset of the Redis client the denylist uses
type redisStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisDenylist keeps revoked token hashes in Redis with a TTL matching the
// token's remaining lifetime
type RedisDenylist struct {
	store redisStore
	now   func() time.Time
}

// NewRedisDenylist creates a Redis-backed denylist
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{store: client, now: time.Now}
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return denylistPrefix + hex.EncodeToString(sum[:])
}

func (d *RedisDenylist) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.store.Set(ctx, denylistKey(token), 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.store.Exists(ctx, denylistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
