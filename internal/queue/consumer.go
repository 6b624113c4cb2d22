package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dakabot/internal/cache"
	"dakabot/internal/model"
	"dakabot/internal/service"
	pkgerrors "dakabot/pkg/errors"
	"dakabot/pkg/line"
	"dakabot/pkg/logger"
	"dakabot/storage/mq"
)

// StartClockOutReminderConsumer 启动下班提醒消费者。
// 同一条消息只会推送一次，单个用户推送失败不会导致整批重试。
func StartClockOutReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ClockOutReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal clock-out reminder message: %w", err)
		}

		processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，不阻塞业务，代价是可能重复推送
		} else if !processed {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.String("batch_id", msg.BatchID),
			)
			return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing clock-out reminder batch",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
			zap.String("punch_date", msg.PunchDate),
			zap.Int("user_count", len(msg.LineUserIDs)),
		)

		bot := line.GetClient()
		text := service.ClockOutReminderText()

		failed := 0
		for _, userID := range msg.LineUserIDs {
			if err := bot.PushText(ctx, userID, text); err != nil {
				failed++
				logger.Logger.Warn("Failed to push clock-out reminder",
					zap.String("message_id", msg.MessageID),
					zap.String("line_user_id", userID),
					zap.Error(err),
				)
			}
		}

		// 全部失败视为批次失败，取消标记允许重试
		if failed == len(msg.LineUserIDs) && len(msg.LineUserIDs) > 0 {
			if err := cache.UnmarkMessageProcessing(ctx, msg.MessageID); err != nil {
				logger.Logger.Warn("Failed to unmark message",
					zap.String("message_id", msg.MessageID),
					zap.Error(err),
				)
			}
			return fmt.Errorf("all %d reminder pushes failed for message %s", failed, msg.MessageID)
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		logger.Logger.Info("Clock-out reminder batch done",
			zap.String("message_id", msg.MessageID),
			zap.Int("pushed", len(msg.LineUserIDs)-failed),
			zap.Int("failed", failed),
		)

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ReminderQueue,
		ConsumerTag:   "clock_out_reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers 启动所有消费者（worker 启动时调用）
func StartAllConsumers(ctx context.Context) {
	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"clock_out_reminder", StartClockOutReminderConsumer},
	}

	for _, c := range consumers {
		go func(name string, consumer func(context.Context) error) {
			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}
}
