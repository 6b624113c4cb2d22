package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dakabot/internal/model"
	"dakabot/internal/model/dto"
	pkgerrors "dakabot/pkg/errors"
	"dakabot/pkg/logger"
	"dakabot/pkg/snowflake"
)

// AdminStore 管理接口需要的查询能力
type AdminStore interface {
	ListFiltered(ctx context.Context, start, end *time.Time, lineUserID string) ([]model.Attendance, error)
}

// UserListStore 员工列表查询
type UserListStore interface {
	EnsureUser(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
}

// UserService 员工建档和管理接口的查询
type UserService struct {
	users   UserListStore
	punches AdminStore
}

func NewUser(users UserListStore, punches AdminStore) *UserService {
	return &UserService{users: users, punches: punches}
}

// Register follow 事件的建档入口，已存在时静默成功
func (s *UserService) Register(ctx context.Context, lineUserID, displayName string) error {
	publicID, err := snowflake.NextID()
	if err != nil {
		return err
	}

	user := &model.User{
		PublicID:   publicID,
		LineUserID: lineUserID,
		Name:       nameOrDefault(displayName),
		IsActive:   true,
	}

	if err := s.users.EnsureUser(ctx, user); err != nil {
		logger.Logger.Error("Failed to register user on follow",
			zap.String("line_user_id", lineUserID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// ListUsers 管理接口：全部员工
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// ListAttendance 管理接口：出勤记录查询，可选过滤
func (s *UserService) ListAttendance(ctx context.Context, query dto.AttendanceQuery) ([]model.Attendance, error) {
	start, err := parseQueryTime(query.StartDate)
	if err != nil {
		return nil, pkgerrors.InvalidTimeRange
	}

	end, err := parseQueryTime(query.EndDate)
	if err != nil {
		return nil, pkgerrors.InvalidTimeRange
	}

	return s.punches.ListFiltered(ctx, start, end, query.UserID)
}

// parseQueryTime 接受 RFC3339 或 YYYY-MM-DD，空串返回 nil
func parseQueryTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
