package model

// User 员工模型，首次打卡成功或 follow 事件时惰性创建

type User struct {
	BaseModel
	PublicID   int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	LineUserID string `gorm:"uniqueIndex;type:varchar(64);not null" json:"line_user_id"`
	Name       string `gorm:"type:varchar(64);not null;default:''" json:"name"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
