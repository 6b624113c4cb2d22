package cache

import (
	"context"
	"time"

	"dakabot/storage/redis"
)

// 消费者幂等标记：同一 MessageID 只处理一次

const (
	processedPrefix = "mq:processed"
)

// TryMarkMessageProcessing 返回 true 表示首次见到该消息，可以处理
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(processedPrefix, messageID)

	return redis.Client().SetNX(ctx, key, 1, ttl).Result()
}

// UnmarkMessageProcessing 处理失败时取消标记，允许重试
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(processedPrefix, messageID)

	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed 处理成功后延长标记 TTL
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(processedPrefix, messageID)

	return redis.Client().Set(ctx, key, 1, ttl).Err()
}
