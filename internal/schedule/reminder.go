package schedule

// 下班提醒调度器：每天在配置的台湾时间扫描已上班未下班的用户，
// 分批发布提醒消息，由 worker 消费后推送

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"dakabot/config"
	"dakabot/internal/cache"
	"dakabot/internal/model"
	"dakabot/internal/queue"
	"dakabot/internal/repository"
	"dakabot/pkg/civil"
	"dakabot/pkg/logger"
	"dakabot/pkg/snowflake"
	"dakabot/storage/database"
)

var (
	schedulerOnce sync.Once
	schedulerInst *ReminderScheduler
)

type ReminderScheduler struct {
	logger     *zap.Logger
	punches    *repository.AttendanceRepository
	jobRunning bool
	jobMu      sync.Mutex
	lastRunAt  time.Time
}

func GetScheduler() *ReminderScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &ReminderScheduler{
			logger:  logger.Logger,
			punches: repository.NewAttendanceRepository(database.DB()),
		}
	})
	return schedulerInst
}

// Run 阻塞运行调度循环，直到 ctx 取消
func (s *ReminderScheduler) Run(ctx context.Context) {
	for {
		next := nextRunTime(time.Now(), config.Cfg.ClockOutRemindAt)

		s.logger.Info("Clock-out reminder scheduler sleeping",
			zap.Time("next_run", next),
		)

		select {
		case <-ctx.Done():
			s.logger.Info("Clock-out reminder scheduler stopped")
			return
		case <-time.After(time.Until(next)):
		}

		if err := s.ScheduleClockOutReminders(ctx); err != nil {
			s.logger.Error("Clock-out reminder scheduling failed", zap.Error(err))
		}
	}
}

// ScheduleClockOutReminders 扫描当天未下班的用户并分批发布提醒消息
func (s *ReminderScheduler) ScheduleClockOutReminders(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Reminder job already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	startTime := time.Now()
	s.lastRunAt = startTime

	today := civil.Today(startTime)
	punchDate := fmt.Sprintf("%04d-%02d-%02d", today.Year, today.Month, today.Day)

	// 多实例部署时只允许一个实例发布当天的批次
	acquired, err := cache.TryMarkReminderScheduled(ctx, punchDate)
	if err != nil {
		return fmt.Errorf("failed to check schedule mark: %w", err)
	}
	if !acquired {
		s.logger.Info("Reminders already scheduled for date",
			zap.String("punch_date", punchDate),
		)
		return nil
	}

	userIDs, err := s.punches.ListPendingClockOut(ctx, civil.DayBoundary(today))
	if err != nil {
		if unmarkErr := cache.UnmarkReminderScheduled(ctx, punchDate); unmarkErr != nil {
			s.logger.Warn("Failed to unmark schedule", zap.Error(unmarkErr))
		}
		return fmt.Errorf("failed to query pending clock-outs: %w", err)
	}

	if len(userIDs) == 0 {
		s.logger.Info("No pending clock-outs today",
			zap.String("punch_date", punchDate),
		)
		return nil
	}

	s.logger.Info("Found users pending clock-out",
		zap.String("punch_date", punchDate),
		zap.Int("user_count", len(userIDs)),
	)

	batchID, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate batch ID: %w", err)
	}

	batchSize := config.Cfg.ClockOutReminderBatch
	if batchSize <= 0 {
		batchSize = 100
	}

	published := 0
	for i := 0; i < len(userIDs); i += batchSize {
		end := i + batchSize
		if end > len(userIDs) {
			end = len(userIDs)
		}

		msg := model.ClockOutReminderMessage{
			BatchID:     fmt.Sprintf("co_batch_%d_%d", batchID, i/batchSize),
			PunchDate:   punchDate,
			ScheduledAt: startTime.Format(time.RFC3339),
			LineUserIDs: userIDs[i:end],
		}

		if err := queue.PublishClockOutReminder(msg); err != nil {
			s.logger.Error("Failed to publish reminder batch",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
			continue
		}
		published++
	}

	s.logger.Info("Clock-out reminder scheduling done",
		zap.String("punch_date", punchDate),
		zap.Int("batches_published", published),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return nil
}

// nextRunTime 计算下一次运行的时刻，remindAt 为台湾时间 HH:MM
func nextRunTime(now time.Time, remindAt string) time.Time {
	parsed, err := time.Parse("15:04", remindAt)
	if err != nil {
		parsed, _ = time.Parse("15:04", "18:30")
	}

	local := now.In(civil.Zone)
	next := time.Date(local.Year(), local.Month(), local.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, civil.Zone)

	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
