package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisTokenRepo struct {
	client *redis.Client
}

func NewRedisTokenRepo(client *redis.Client) *RedisTokenRepo {
	return &RedisTokenRepo{client: client}
}

func (r *RedisTokenRepo) RevokeAccess(ctx context.Context, jti string, exp time.Time) error {
	return r.client.Set(ctx, "a:"+jti, 1, safeTTL(exp)).Err()
}

func (r *RedisTokenRepo) IsAccessRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, "a:"+jti).Result()
	return n > 0, err
}

// safeTTL keeps the key expiring even when exp is already in the past, so
// the denylist never accumulates immortal entries.
func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
