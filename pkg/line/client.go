package line

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"dakabot/config"
	"dakabot/pkg/logger"
)

// Client LINE Messaging API 客户端接口
type Client interface {
	// ReplyText 用 reply token 回复单条文字消息
	ReplyText(ctx context.Context, replyToken, text string) error

	// PushText 主动推送单条文字消息给用户
	PushText(ctx context.Context, userID, text string) error

	// GetDisplayName 查询用户的显示名称
	GetDisplayName(ctx context.Context, userID string) (string, error)
}

var (
	lineClient Client
	lineOnce   sync.Once
	lineErr    error
)

// Init 初始化 LINE 客户端
func Init() error {
	lineOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.LineProvider {
		case "line":
			lineClient, lineErr = NewMessagingClient(cfg.LineChannelToken)
		case "mock":
			lineClient = NewMockClient()
		default:
			lineErr = fmt.Errorf("unsupported LINE provider: %s", cfg.LineProvider)
		}

		if lineErr != nil {
			logger.Logger.Error("Failed to initialize LINE client", zap.Error(lineErr))
			return
		}

		logger.Logger.Info("LINE client initialized successfully",
			zap.String("provider", cfg.LineProvider),
		)
	})

	return lineErr
}

func GetClient() Client {
	if lineClient == nil {
		panic("LINE client not initialized, call line.Init() first")
	}
	return lineClient
}
