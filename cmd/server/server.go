package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"dakabot/config"
	"dakabot/internal/cache"
	"dakabot/internal/handler"
	"dakabot/internal/middleware"
	"dakabot/internal/repository"
	"dakabot/internal/router"
	"dakabot/internal/service"
	"dakabot/pkg/geo"
	"dakabot/pkg/line"
	"dakabot/pkg/logger"
	pkgotel "dakabot/pkg/otel"
	"dakabot/pkg/snowflake"
	"dakabot/storage"
	"dakabot/storage/database"
)

func main() {
	// 日志部分
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

	// 初始化存储层，记得关闭外部连接
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

	if config.Cfg.TracingEnabled {
		shutdown, err := pkgotel.InitOpenTelemetry(ctx, pkgotel.Config{
			ServiceName:    config.Cfg.ServiceName,
			ServiceVersion: "1.0.0",
			Environment:    config.Cfg.Environment,
			OTLPEndpoint:   config.Cfg.OTLPEndpoint,
			SampleRatio:    config.Cfg.TracingSampler,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize OpenTelemetry, tracing disabled", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
				}
			}()
		}
	}

	// 指标必须在路由注册前初始化，TracingEnabled=false 时拿到的是 noop meter
	if err := middleware.InitMetrics(otel.Meter("dakabot-server")); err != nil {
		logger.Logger.Fatal("Failed to initialize HTTP metrics", zap.Error(err))
	}

	resolver, err := geo.NewResolver(siteList())
	if err != nil {
		logger.Logger.Fatal("Failed to build site resolver", zap.Error(err))
	}

	punches := repository.NewAttendanceRepository(database.DB())
	users := repository.NewUserRepository(database.DB())

	attendanceService := service.NewAttendance(resolver, punches, users, cache.RedisLocker{})
	reportService := service.NewReport(punches)
	userService := service.NewUser(users, punches)

	webhookHandler := handler.NewWebhookHandler(
		attendanceService,
		reportService,
		userService,
		line.GetClient(),
		config.Cfg.LineChannelSecret,
	)
	adminHandler := handler.NewAdminHandler(userService)

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
		zap.Int("sites", len(resolver.Sites())),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	h := server.Default(server.WithHostPorts(addr))

	router.Register(h, webhookHandler, adminHandler)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}

func siteList() []geo.Site {
	slots := config.Cfg.SiteSlots()

	sites := make([]geo.Site, 0, len(slots))
	for _, s := range slots {
		sites = append(sites, geo.Site{
			Name:         s.Name,
			Lat:          s.Lat,
			Lng:          s.Lng,
			RadiusMeters: s.Radius,
		})
	}

	return sites
}
