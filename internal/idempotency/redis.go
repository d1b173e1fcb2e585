package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long an in-flight request holds its key
const lockTTL = 30 * time.Second

// RedisStore remembers which order an Idempotency-Key produced
type RedisStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	scope string
}

// NewRedisStore creates a store whose remembered results expire after ttl
func NewRedisStore(rdb *redis.Client, scope string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, scope: scope}
}

func (s *RedisStore) lockKey(key string) string {
	return "idemp:" + s.scope + ":" + key
}

func (s *RedisStore) resultKey(key string) string {
	return "idemp:map:" + s.scope + ":" + key
}

// TryLock claims key for the calling request; false means another request holds it
func (s *RedisStore) TryLock(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, s.lockKey(key), "1", lockTTL).Result()
}

// Unlock releases a claim after a failed attempt so the caller may retry
func (s *RedisStore) Unlock(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.lockKey(key)).Err()
}

// Remember records the order created for key
func (s *RedisStore) Remember(ctx context.Context, key string, orderID int64) error {
	return s.rdb.Set(ctx, s.resultKey(key), orderID, s.ttl).Err()
}

// Recall returns the order created for key, if any
func (s *RedisStore) Recall(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.rdb.Get(ctx, s.resultKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt idempotency record %q: %w", key, err)
	}
	return id, true, nil
}

// Ping checks the redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
