package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"

	"dakabot/internal/cache"
	"dakabot/internal/service"
	"dakabot/pkg/line"
	"dakabot/pkg/logger"
)

// WebhookHandler 处理 LINE 平台的回调事件
type WebhookHandler struct {
	attendance    *service.AttendanceService
	report        *service.ReportService
	users         *service.UserService
	bot           line.Client
	channelSecret string
}

func NewWebhookHandler(
	attendance *service.AttendanceService,
	report *service.ReportService,
	users *service.UserService,
	bot line.Client,
	channelSecret string,
) *WebhookHandler {
	return &WebhookHandler{
		attendance:    attendance,
		report:        report,
		users:         users,
		bot:           bot,
		channelSecret: channelSecret,
	}
}

// Handle POST /webhook
// 每个事件独立处理，彼此不共享可变状态；全部处理完再返回 200
func (h *WebhookHandler) Handle(ctx context.Context, c *app.RequestContext) {
	httpReq, err := adaptor.GetCompatRequest(&c.Request)
	if err != nil {
		logger.Logger.Error("Failed to convert webhook request", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		logger.Logger.Warn("Rejected webhook request", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	var wg sync.WaitGroup
	for _, event := range cb.Events {
		wg.Add(1)
		go func(event webhook.EventInterface) {
			defer wg.Done()
			h.dispatch(ctx, event)
		}(event)
	}
	wg.Wait()

	c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *WebhookHandler) dispatch(ctx context.Context, event webhook.EventInterface) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		h.handleMessage(ctx, e)
	case webhook.FollowEvent:
		h.handleFollow(ctx, e)
	default:
		// 其他事件类型（unfollow、join 等）不需要回复
	}
}

func (h *WebhookHandler) handleMessage(ctx context.Context, e webhook.MessageEvent) {
	userID := sourceUserID(e.Source)
	if userID == "" {
		return
	}

	switch m := e.Message.(type) {
	case webhook.TextMessageContent:
		h.handleText(ctx, e.ReplyToken, userID, m.Text)
	case webhook.LocationMessageContent:
		h.handleLocation(ctx, e.ReplyToken, userID, m.Latitude, m.Longitude)
	}
}

func (h *WebhookHandler) handleText(ctx context.Context, replyToken, userID, text string) {
	var reply string

	switch cmd := service.RouteCommand(text); cmd {
	case service.CommandShowSummary:
		reply = h.report.MonthlySummary(ctx, userID, time.Now()).Message
	default:
		reply = service.PromptReply(cmd)
	}

	h.reply(ctx, replyToken, reply)
}

func (h *WebhookHandler) handleLocation(ctx context.Context, replyToken, userID string, latitude, longitude float64) {
	displayName := h.displayName(ctx, userID)

	outcome := h.attendance.SubmitPunch(ctx, userID, displayName, latitude, longitude, time.Now())

	h.reply(ctx, replyToken, outcome.Message)
}

func (h *WebhookHandler) handleFollow(ctx context.Context, e webhook.FollowEvent) {
	userID := sourceUserID(e.Source)
	if userID == "" {
		return
	}

	displayName := h.displayName(ctx, userID)

	if err := h.users.Register(ctx, userID, displayName); err != nil {
		logger.Logger.Error("Failed to register follower",
			zap.String("line_user_id", userID),
			zap.Error(err),
		)
	}

	h.reply(ctx, e.ReplyToken, service.WelcomeMessage(displayName))
}

// displayName 先查缓存，未命中再调 profile 接口；全部失败时用默认称呼
func (h *WebhookHandler) displayName(ctx context.Context, userID string) string {
	if name, err := cache.GetDisplayName(ctx, userID); err == nil && name != "" {
		return name
	}

	name, err := h.bot.GetDisplayName(ctx, userID)
	if err != nil {
		logger.Logger.Warn("Failed to fetch LINE profile",
			zap.String("line_user_id", userID),
			zap.Error(err),
		)
		return ""
	}

	if err := cache.SetDisplayName(ctx, userID, name); err != nil {
		logger.Logger.Warn("Failed to cache display name",
			zap.String("line_user_id", userID),
			zap.Error(err),
		)
	}

	return name
}

func (h *WebhookHandler) reply(ctx context.Context, replyToken, text string) {
	if err := h.bot.ReplyText(ctx, replyToken, text); err != nil {
		logger.Logger.Error("Failed to send reply", zap.Error(err))
	}
}

func sourceUserID(source webhook.SourceInterface) string {
	if s, ok := source.(webhook.UserSource); ok {
		return s.UserId
	}
	return ""
}
