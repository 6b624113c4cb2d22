package service

import (
	"fmt"
	"strings"
)

// Command 文字指令路由结果
type Command int

const (
	CommandUnknown Command = iota
	CommandPromptClockIn
	CommandPromptClockOut
	CommandShowSummary
	CommandShowHelp
)

// RouteCommand 把固定指令文本映射到动作，纯函数
func RouteCommand(text string) Command {
	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case "上班", "打卡":
		return CommandPromptClockIn
	case "下班":
		return CommandPromptClockOut
	case "查詢", "本月出勤", "記錄":
		return CommandShowSummary
	case "幫助", "說明", "?":
		return CommandShowHelp
	}

	switch strings.ToLower(trimmed) {
	case "clock in":
		return CommandPromptClockIn
	case "clock out":
		return CommandPromptClockOut
	}

	return CommandUnknown
}

// PromptReply 固定指令的回复文本，月报除外（由 ReportService 渲染）
func PromptReply(cmd Command) string {
	switch cmd {
	case CommandPromptClockIn:
		return "請分享您的位置以完成上班打卡\n\n👇 點選下方「+」→「位置資訊」"
	case CommandPromptClockOut:
		return "請分享您的位置以完成下班打卡\n\n👇 點選下方「+」→「位置資訊」"
	case CommandShowHelp:
		return "📱 LINE 打卡系統使用說明\n\n" +
			"上班打卡:\n1. 傳送「上班」\n2. 分享位置資訊\n\n" +
			"下班打卡:\n1. 傳送「下班」\n2. 分享位置資訊\n\n" +
			"其他指令:\n• 「查詢」- 查看本月出勤\n• 「幫助」- 顯示此說明"
	default:
		return "❓ 不認識的指令\n\n請傳送「幫助」查看使用說明"
	}
}

// WelcomeMessage follow 事件的欢迎文本
func WelcomeMessage(displayName string) string {
	return fmt.Sprintf("👋 歡迎 %s！\n\n您已成功加入打卡系統\n\n傳送「幫助」查看使用說明", nameOrDefault(displayName))
}

// ClockOutReminderText 下班提醒推送文本
func ClockOutReminderText() string {
	return "🔔 下班提醒\n\n您今天還沒有下班打卡\n請分享位置資訊完成打卡"
}
