package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"dakabot/pkg/civil"
)

// Health GET /health
// 同时给出 UTC 与台湾时间，方便确认打卡日界线
func Health(ctx context.Context, c *app.RequestContext) {
	now := time.Now()

	c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": now.UTC().Format(time.RFC3339),
		"localTime": now.In(civil.Zone).Format("2006-01-02 15:04:05"),
	})
}
