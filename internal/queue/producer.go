package queue

import (
	"fmt"

	"go.uber.org/zap"

	"dakabot/internal/model"
	"dakabot/pkg/logger"
	"dakabot/pkg/snowflake"
	"dakabot/storage/mq"
)

// PublishClockOutReminder 发布下班提醒消息
func PublishClockOutReminder(msg model.ClockOutReminderMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("co_reminder_%d", id)
	}

	err := mq.PublishMessage(
		mq.ReminderExchange,
		mq.ReminderRoutingKey,
		msg,
	)

	if err != nil {
		logger.Logger.Error("Failed to publish clock-out reminder message",
			zap.String("batch_id", msg.BatchID),
			zap.Int("user_count", len(msg.LineUserIDs)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published clock-out reminder message",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", msg.BatchID),
		zap.String("punch_date", msg.PunchDate),
		zap.Int("user_count", len(msg.LineUserIDs)),
	)

	return nil
}
