package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dakabot/config"
	"dakabot/internal/schedule"
	"dakabot/pkg/logger"
	"dakabot/pkg/snowflake"
	"dakabot/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "dakabot-scheduler"),
		zap.String("environment", config.Cfg.Environment),
		zap.String("remind_at", config.Cfg.ClockOutRemindAt),
	)

	go runReminderLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runReminderLoop 下班提醒调度循环
// development 环境改为每分钟执行一次，方便本地调试
func runReminderLoop(ctx context.Context) {
	s := schedule.GetScheduler()

	if config.Cfg.IsDevelopment() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		logger.Logger.Info("Reminder scheduler running in development mode with 1m interval")

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				if err := s.ScheduleClockOutReminders(runCtx); err != nil {
					logger.Logger.Error("Reminder scheduler run failed (development interval)", zap.Error(err))
				}
				cancel()
			}
		}
	}

	s.Run(ctx)
}
