// Package revocation keeps revoked token ids in Redis until the tokens would
// have expired anyway.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "folio:revoked:"

// List is a Redis backed revocation list. It satisfies jwtx.RevocationList.
type List struct {
	client redis.Cmdable
}

func New(client redis.Cmdable) *List {
	return &List{client: client}
}

// Connect parses a redis:// URL and returns a list plus the client, which
// the caller closes.
func Connect(url string) (*List, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("revocation: parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	return New(client), client, nil
}

func key(id string) string {
	return keyPrefix + id
}

// Revoke marks id as revoked for ttl. A token with no lifetime left needs no
// entry.
func (l *List) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if id == "" || ttl <= 0 {
		return nil
	}
	if err := l.client.Set(ctx, key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revocation: revoke: %w", err)
	}
	return nil
}

func (l *List) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	n, err := l.client.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation: lookup: %w", err)
	}
	return n > 0, nil
}

// Ping verifies the Redis connection is still alive.
func (l *List) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
