package line

import (
	"context"
	"errors"
	"sync"
)

type MockMessage struct {
	ReplyToken string
	UserID     string
	Text       string
	Pushed     bool
}

// MockClient 可配置的 LINE 客户端 mock，实现 Client 接口
type MockClient struct {
	mu       sync.Mutex
	Messages []MockMessage

	// Profiles userID -> 显示名称，缺省返回 "員工"
	Profiles map[string]string

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Messages: make([]MockMessage, 0),
		Profiles: make(map[string]string),
	}
}

func (m *MockClient) ReplyText(ctx context.Context, replyToken, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock line reply failure")
	}

	m.Messages = append(m.Messages, MockMessage{ReplyToken: replyToken, Text: text})
	return nil
}

func (m *MockClient) PushText(ctx context.Context, userID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock line push failure")
	}

	m.Messages = append(m.Messages, MockMessage{UserID: userID, Text: text, Pushed: true})
	return nil
}

func (m *MockClient) GetDisplayName(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", errors.New("mock line profile failure")
	}

	if name, ok := m.Profiles[userID]; ok {
		return name, nil
	}
	return "員工", nil
}

// LastMessage 返回最近一条消息，便于断言
func (m *MockClient) LastMessage() (MockMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Messages) == 0 {
		return MockMessage{}, false
	}
	return m.Messages[len(m.Messages)-1], true
}
