package line

import (
	"context"
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"go.uber.org/zap"

	"dakabot/pkg/logger"
)

// MessagingClient 基于官方 Messaging API 的实现
type MessagingClient struct {
	api *messaging_api.MessagingApiAPI
}

func NewMessagingClient(channelToken string) (*MessagingClient, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging api client: %w", err)
	}

	return &MessagingClient{api: api}, nil
}

func (c *MessagingClient) ReplyText(ctx context.Context, replyToken, text string) error {
	_, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	})

	if err != nil {
		logger.Logger.Error("Failed to reply LINE message",
			zap.String("reply_token", replyToken),
			zap.Error(err),
		)
		return fmt.Errorf("failed to reply message: %w", err)
	}

	return nil
}

func (c *MessagingClient) PushText(ctx context.Context, userID, text string) error {
	_, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To: userID,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: text},
		},
	}, "")

	if err != nil {
		logger.Logger.Error("Failed to push LINE message",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to push message: %w", err)
	}

	return nil
}

func (c *MessagingClient) GetDisplayName(ctx context.Context, userID string) (string, error) {
	profile, err := c.api.GetProfile(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}

	return profile.DisplayName, nil
}
