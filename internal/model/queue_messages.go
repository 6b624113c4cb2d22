package model

// ClockOutReminderMessage 下班提醒消息，按批次分组用户
type ClockOutReminderMessage struct {
	MessageID   string   `json:"message_id"` // 消息唯一ID，用于幂等性检查
	BatchID     string   `json:"batch_id"`
	PunchDate   string   `json:"punch_date"` // 台湾日期 YYYY-MM-DD
	ScheduledAt string   `json:"scheduled_at"`
	LineUserIDs []string `json:"line_user_ids"`
}
