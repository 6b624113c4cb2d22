package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"上班", CommandPromptClockIn},
		{"打卡", CommandPromptClockIn},
		{"下班", CommandPromptClockOut},
		{"查詢", CommandShowSummary},
		{"本月出勤", CommandShowSummary},
		{"記錄", CommandShowSummary},
		{"幫助", CommandShowHelp},
		{"說明", CommandShowHelp},
		{"?", CommandShowHelp},
		{"clock in", CommandPromptClockIn},
		{"Clock In", CommandPromptClockIn},
		{"CLOCK OUT", CommandPromptClockOut},
		{"  上班  ", CommandPromptClockIn},
		{"你好", CommandUnknown},
		{"", CommandUnknown},
		{"上班打卡", CommandUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RouteCommand(tt.text), "text=%q", tt.text)
	}
}

func TestPromptReply(t *testing.T) {
	assert.Contains(t, PromptReply(CommandPromptClockIn), "上班打卡")
	assert.Contains(t, PromptReply(CommandPromptClockIn), "位置資訊")
	assert.Contains(t, PromptReply(CommandPromptClockOut), "下班打卡")
	assert.Contains(t, PromptReply(CommandShowHelp), "📱 LINE 打卡系統使用說明")
	assert.Contains(t, PromptReply(CommandUnknown), "❓ 不認識的指令")
}

func TestWelcomeMessage(t *testing.T) {
	assert.Contains(t, WelcomeMessage("小明"), "👋 歡迎 小明")
	assert.Contains(t, WelcomeMessage(""), "👋 歡迎 員工")
}

func TestClockOutReminderText(t *testing.T) {
	assert.Contains(t, ClockOutReminderText(), "🔔 下班提醒")
}
