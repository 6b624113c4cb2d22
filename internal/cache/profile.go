package cache

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"dakabot/storage/redis"
)

// 缓存 LINE 显示名称，避免每条消息都调一次 profile 接口

const (
	profilePrefix = "profile:name"
	profileTTL    = 24 * time.Hour
)

func SetDisplayName(ctx context.Context, lineUserID, name string) error {
	key := redis.Key(profilePrefix, lineUserID)

	return redis.Client().Set(ctx, key, name, profileTTL).Err()
}

// GetDisplayName 未命中时返回空串和 nil error
func GetDisplayName(ctx context.Context, lineUserID string) (string, error) {
	key := redis.Key(profilePrefix, lineUserID)

	name, err := redis.Client().Get(ctx, key).Result()
	if err == redislib.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return name, nil
}
