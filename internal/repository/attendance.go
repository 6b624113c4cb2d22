package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dakabot/internal/model"
	"dakabot/pkg/civil"
)

// AttendanceRepository 打卡记录的读写，全部走主库
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListForDay 查询用户在某个台湾日内的全部打卡记录，最多两行
func (r *AttendanceRepository) ListForDay(ctx context.Context, lineUserID string, b civil.Boundary) ([]model.Attendance, error) {
	var records []model.Attendance

	err := r.db.WithContext(ctx).
		Where("line_user_id = ?", lineUserID).
		Where("created_at >= ? AND created_at <= ?", b.Start, b.End).
		Order("created_at ASC").
		Find(&records).Error

	return records, err
}

// ListForRange 查询用户在边界内的打卡记录，时间倒序
func (r *AttendanceRepository) ListForRange(ctx context.Context, lineUserID string, b civil.Boundary) ([]model.Attendance, error) {
	var records []model.Attendance

	err := r.db.WithContext(ctx).
		Where("line_user_id = ?", lineUserID).
		Where("created_at >= ? AND created_at <= ?", b.Start, b.End).
		Order("created_at DESC").
		Find(&records).Error

	return records, err
}

// Insert 写入一条打卡记录，created_at 由数据库赋值
func (r *AttendanceRepository) Insert(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListFiltered 管理接口查询：可选时间范围和用户过滤，时间倒序
func (r *AttendanceRepository) ListFiltered(ctx context.Context, start, end *time.Time, lineUserID string) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{}).Order("created_at DESC")

	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}
	if lineUserID != "" {
		query = query.Where("line_user_id = ?", lineUserID)
	}

	var records []model.Attendance
	err := query.Find(&records).Error

	return records, err
}

// ListPendingClockOut 查询边界内已上班但未下班的用户，用于下班提醒
func (r *AttendanceRepository) ListPendingClockOut(ctx context.Context, b civil.Boundary) ([]string, error) {
	var userIDs []string

	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Select("line_user_id").
		Where("type = ?", model.PunchTypeClockIn).
		Where("created_at >= ? AND created_at <= ?", b.Start, b.End).
		Where("line_user_id NOT IN (?)",
			r.db.Model(&model.Attendance{}).
				Select("line_user_id").
				Where("type = ?", model.PunchTypeClockOut).
				Where("created_at >= ? AND created_at <= ?", b.Start, b.End),
		).
		Find(&userIDs).Error

	return userIDs, err
}
