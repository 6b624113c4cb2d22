package cache

import (
	"context"
	"fmt"
	"time"

	"dakabot/storage/redis"
)

// 调度幂等标记：同一个台湾日期只发布一次下班提醒批次

const (
	schedulePrefix = "schedule:clock_out"
)

// TryMarkReminderScheduled 返回 true 表示该日期尚未调度，可以发布
func TryMarkReminderScheduled(ctx context.Context, punchDate string) (bool, error) {
	key := redis.Key(schedulePrefix, punchDate)

	return redis.Client().SetNX(ctx, key, 1, 48*time.Hour).Result()
}

// UnmarkReminderScheduled 发布失败时取消标记，允许下一轮重试
func UnmarkReminderScheduled(ctx context.Context, punchDate string) error {
	key := redis.Key(schedulePrefix, punchDate)

	return redis.Client().Del(ctx, key).Err()
}

// ScheduleKey 用于日志排查
func ScheduleKey(punchDate string) string {
	return fmt.Sprintf("%s:%s", schedulePrefix, punchDate)
}
