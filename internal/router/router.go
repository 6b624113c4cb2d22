package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"dakabot/internal/handler"
	"dakabot/internal/middleware"
)

func Register(h *server.Hertz, webhook *handler.WebhookHandler, admin *handler.AdminHandler) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/health", handler.Health)

	// LINE 平台回调，签名校验在 handler 内完成
	h.POST("/webhook", webhook.Handle)

	// 管理接口，无对外鉴权，由部署层限制来源
	api := h.Group("/api")
	api.Use(middleware.AdminRateLimitMiddleware())
	{
		api.GET("/users", admin.ListUsers)
		api.GET("/attendance", admin.ListAttendance)
	}
}
