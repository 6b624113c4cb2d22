package model

import "time"

// PunchType 打卡类型枚举
type PunchType string

const (
	PunchTypeClockIn  PunchType = "clock_in"  // 上班
	PunchTypeClockOut PunchType = "clock_out" // 下班
)

// DayState 单个用户在单个台湾日历日内的打卡状态
type DayState int

const (
	DayStateNone            DayState = iota // 今天还没打过卡
	DayStateClockedIn                       // 已上班
	DayStateClockedInAndOut                 // 已上班且已下班
)

// Attendance 打卡记录，写入后不再更新或删除
type Attendance struct {
	CreatedAt      time.Time `gorm:"type:timestamptz;not null;default:now();index:idx_attendances_user_type_time,priority:3" json:"created_at"`
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicID       int64     `gorm:"uniqueIndex;not null" json:"public_id"`
	LineUserID     string    `gorm:"type:varchar(64);not null;index:idx_attendances_user_type_time,priority:1" json:"line_user_id"`
	UserName       string    `gorm:"type:varchar(64);not null;default:''" json:"user_name"`
	Type           PunchType `gorm:"type:varchar(16);not null;index:idx_attendances_user_type_time,priority:2" json:"type"`
	Latitude       float64   `gorm:"not null" json:"latitude"`
	Longitude      float64   `gorm:"not null" json:"longitude"`
	DistanceMeters int       `gorm:"not null" json:"distance_meters"`
	SiteName       string    `gorm:"type:varchar(64);not null" json:"site_name"`
}

// TableName 指定表名
func (Attendance) TableName() string {
	return "attendances"
}

// StateOf 从一天内的记录推导打卡状态，最多两行
func StateOf(records []Attendance) DayState {
	var hasIn, hasOut bool
	for _, r := range records {
		switch r.Type {
		case PunchTypeClockIn:
			hasIn = true
		case PunchTypeClockOut:
			hasOut = true
		}
	}

	switch {
	case hasIn && hasOut:
		return DayStateClockedInAndOut
	case hasIn:
		return DayStateClockedIn
	default:
		return DayStateNone
	}
}
