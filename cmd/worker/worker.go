package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dakabot/config"
	"dakabot/internal/queue"
	"dakabot/pkg/line"
	"dakabot/pkg/logger"
	"dakabot/pkg/snowflake"
	"dakabot/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := line.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize LINE client", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", "dakabot-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 启动全部消费者
	queue.StartAllConsumers(ctx)

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
