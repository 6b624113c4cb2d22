package dto

import "time"

// ========== 打卡相关 DTO ==========

// PunchOutcomeKind 打卡结果类别
type PunchOutcomeKind string

const (
	PunchAccepted    PunchOutcomeKind = "accepted"
	PunchOutOfRange  PunchOutcomeKind = "out_of_range"
	PunchDuplicate   PunchOutcomeKind = "duplicate"
	PunchSystemError PunchOutcomeKind = "system_error"
)

// PunchOutcome 单次打卡请求的结构化结果，Message 是发给用户的完整回复文本
type PunchOutcome struct {
	Kind           PunchOutcomeKind `json:"kind"`
	Type           string           `json:"type,omitempty"` // clock_in / clock_out
	SiteName       string           `json:"site_name,omitempty"`
	DistanceMeters int              `json:"distance_meters,omitempty"`
	PunchedAt      time.Time        `json:"punched_at,omitempty"`
	Message        string           `json:"message"`
}

// DailySummary 月报中单日的聚合结果
type DailySummary struct {
	Date     string `json:"date"`                // 台湾日期 YYYY/MM/DD
	ClockIn  string `json:"clock_in,omitempty"`  // HH:mm
	ClockOut string `json:"clock_out,omitempty"` // HH:mm
}

// MonthlySummary 当月出勤汇总
type MonthlySummary struct {
	Days         []DailySummary `json:"days"`
	OmittedDays  int            `json:"omitted_days"`
	TotalRecords int            `json:"total_records"`
	Message      string         `json:"message"`
}

// ========== 管理接口 DTO ==========

// AttendanceQuery 出勤记录查询参数
type AttendanceQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	UserID    string `query:"userId"`
}
