package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter enforces a per-user daily message budget with a Redis counter
// that expires at the end of the UTC day.
type Limiter struct {
	rdb *redis.Client
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func dailyKey(userId uuid.UUID) string {
	return fmt.Sprintf("usage:agent:%s:%s", userId, time.Now().UTC().Format("2006-01-02"))
}

// Allow increments today's counter and reports whether the user is still
// under limit. A limit of zero or below means unlimited. Redis being down
// fails open; a broken limiter should not take chat down with it.
func (l *Limiter) Allow(ctx context.Context, userId uuid.UUID, limit int) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	key := dailyKey(userId)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		now := time.Now().UTC()
		midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		l.rdb.Expire(ctx, key, midnight.Sub(now))
	}

	return count <= int64(limit), nil
}

// Remaining reports how many messages the user has left today.
func (l *Limiter) Remaining(ctx context.Context, userId uuid.UUID, limit int) (int, error) {
	if limit <= 0 {
		return -1, nil
	}

	count, err := l.rdb.Get(ctx, dailyKey(userId)).Int()
	if err != nil {
		if err == redis.Nil {
			return limit, nil
		}
		return limit, err
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
