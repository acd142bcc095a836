package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "purchase:idemp:"

// IdempotencyGuard fences duplicate purchase submissions with a SETNX lock.
// The lock is released when the attempt fails, so a deliberate retry with the
// same key is still possible. When the purchase commits, the key is rewritten
// with the order id so a later duplicate can recall what it bought.
type IdempotencyGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyGuard(rdb *redis.Client, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{
		rdb: rdb,
		ttl: ttl,
	}
}

func (g *IdempotencyGuard) TryLock(ctx context.Context, key string) (bool, error) {
	// Empty value marks an in-flight attempt that has not committed yet.
	return g.rdb.SetNX(ctx, idempotencyKeyPrefix+key, "", g.ttl).Result()
}

func (g *IdempotencyGuard) Remember(ctx context.Context, key string, orderId int) error {
	return g.rdb.Set(ctx, idempotencyKeyPrefix+key, strconv.Itoa(orderId), g.ttl).Err()
}

func (g *IdempotencyGuard) Recall(ctx context.Context, key string) (int, bool, error) {
	val, err := g.rdb.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if val == "" {
		// Lock held by an attempt that is still in flight.
		return 0, false, nil
	}

	orderId, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}

	return orderId, true, nil
}

func (g *IdempotencyGuard) Unlock(ctx context.Context, key string) error {
	return g.rdb.Del(ctx, idempotencyKeyPrefix+key).Err()
}
