package cache

import (
	"context"
	"time"

	"dakabot/storage/redis"
)

// 基于 SetNX 的分布式锁。打卡的查重和写入之间存在窗口，
// 同一用户的并发打卡先在这里串行化。

const (
	lockPrefix = "lock"
)

func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullkey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullkey, 1, ttl).Result()

	if err != nil {
		return false, err
	}

	return result, err
}

func Unlock(ctx context.Context, key string) error {
	fullkey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullkey).Err()
}

// RedisLocker 提供给 service 层注入的锁实现
type RedisLocker struct{}

func (RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return TryLock(ctx, key, ttl)
}

func (RedisLocker) Unlock(ctx context.Context, key string) error {
	return Unlock(ctx, key)
}
