package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dakabot/internal/model"
	"dakabot/internal/model/dto"
	"dakabot/pkg/civil"
	"dakabot/pkg/geo"
	"dakabot/pkg/logger"
	"dakabot/pkg/snowflake"
)

const punchLockTTL = 10 * time.Second

// PunchStore 决策引擎需要的打卡存取能力
type PunchStore interface {
	ListForDay(ctx context.Context, lineUserID string, b civil.Boundary) ([]model.Attendance, error)
	Insert(ctx context.Context, record *model.Attendance) error
}

// UserStore 员工建档能力
type UserStore interface {
	EnsureUser(ctx context.Context, user *model.User) error
}

// UserLocker 同一用户打卡的串行化，实现见 internal/cache
type UserLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// AttendanceService 打卡决策引擎
type AttendanceService struct {
	resolver *geo.Resolver
	punches  PunchStore
	users    UserStore
	locker   UserLocker // nil 时跳过锁，直接走查重路径
}

func NewAttendance(resolver *geo.Resolver, punches PunchStore, users UserStore, locker UserLocker) *AttendanceService {
	return &AttendanceService{
		resolver: resolver,
		punches:  punches,
		users:    users,
		locker:   locker,
	}
}

// SubmitPunch 处理一次位置打卡。
// 打卡类型不由用户指定：当天还没有上班记录就算上班，否则算下班。
// 所有结果都落到 PunchOutcome，每个请求恰好产生一条回复。
func (s *AttendanceService) SubmitPunch(
	ctx context.Context,
	lineUserID, displayName string,
	latitude, longitude float64,
	now time.Time,
) *dto.PunchOutcome {
	nearest := s.resolver.ResolveNearest(latitude, longitude)

	if !nearest.WithinRadius {
		return &dto.PunchOutcome{
			Kind:           dto.PunchOutOfRange,
			SiteName:       nearest.SiteName,
			DistanceMeters: nearest.DistanceMeters,
			Message: fmt.Sprintf(
				"❌ 打卡失敗\n\n最近的地點: %s\n您距離 %d 公尺\n超出允許範圍 %.0f 公尺\n請在公司範圍內打卡",
				nearest.SiteName, nearest.DistanceMeters, nearest.AllowedRadius,
			),
		}
	}

	if s.locker != nil {
		lockKey := "punch:" + lineUserID
		acquired, err := s.locker.TryLock(ctx, lockKey, punchLockTTL)
		if err != nil {
			// 锁服务不可用时降级为无锁路径，查重仍然兜底
			logger.Logger.Warn("Punch lock unavailable, proceeding without lock",
				zap.String("line_user_id", lineUserID),
				zap.Error(err),
			)
		} else if !acquired {
			return &dto.PunchOutcome{
				Kind:    dto.PunchSystemError,
				Message: "⏳ 打卡處理中，請稍後再試",
			}
		} else {
			defer func() {
				if err := s.locker.Unlock(ctx, lockKey); err != nil {
					logger.Logger.Warn("Failed to release punch lock",
						zap.String("line_user_id", lineUserID),
						zap.Error(err),
					)
				}
			}()
		}
	}

	boundary := civil.DayBoundary(civil.Today(now))

	// 单次查询拿到当天全部记录，同时用于类型推断和查重
	todayRecords, err := s.punches.ListForDay(ctx, lineUserID, boundary)
	if err != nil {
		return s.systemError("failed to load today's records", lineUserID, err)
	}

	punchType := model.PunchTypeClockIn
	if model.StateOf(todayRecords) != model.DayStateNone {
		punchType = model.PunchTypeClockOut
	}

	for _, existing := range todayRecords {
		if existing.Type != punchType {
			continue
		}
		return &dto.PunchOutcome{
			Kind:     dto.PunchDuplicate,
			Type:     string(punchType),
			SiteName: existing.SiteName,
			Message: fmt.Sprintf(
				"⚠️ 您今天已經%s打卡了\n\n打卡時間: %s\n打卡地點: %s",
				typeLabel(punchType), civil.FormatTime(existing.CreatedAt, false), siteOrUnknown(existing.SiteName),
			),
		}
	}

	// 员工建档是 best-effort，失败不影响打卡
	s.ensureUser(ctx, lineUserID, displayName)

	publicID, err := snowflake.NextID()
	if err != nil {
		return s.systemError("failed to generate punch id", lineUserID, err)
	}

	record := &model.Attendance{
		PublicID:       publicID,
		LineUserID:     lineUserID,
		UserName:       nameOrDefault(displayName),
		Type:           punchType,
		Latitude:       latitude,
		Longitude:      longitude,
		DistanceMeters: nearest.DistanceMeters,
		SiteName:       nearest.SiteName,
	}

	if err := s.punches.Insert(ctx, record); err != nil {
		return s.systemError("failed to insert punch record", lineUserID, err)
	}

	punchedAt := record.CreatedAt
	if punchedAt.IsZero() {
		punchedAt = now
	}

	logger.Logger.Info("Punch recorded",
		zap.String("line_user_id", lineUserID),
		zap.String("type", string(punchType)),
		zap.String("site", nearest.SiteName),
		zap.Int("distance_meters", nearest.DistanceMeters),
	)

	return &dto.PunchOutcome{
		Kind:           dto.PunchAccepted,
		Type:           string(punchType),
		SiteName:       nearest.SiteName,
		DistanceMeters: nearest.DistanceMeters,
		PunchedAt:      punchedAt,
		Message: fmt.Sprintf(
			"✅ %s打卡成功！\n\n時間: %s\n地點: %s\n距離: %d 公尺",
			typeLabel(punchType), civil.FormatTime(punchedAt, true), nearest.SiteName, nearest.DistanceMeters,
		),
	}
}

func (s *AttendanceService) ensureUser(ctx context.Context, lineUserID, displayName string) {
	publicID, err := snowflake.NextID()
	if err != nil {
		logger.Logger.Warn("Failed to generate user id, skipping user upsert",
			zap.String("line_user_id", lineUserID),
			zap.Error(err),
		)
		return
	}

	user := &model.User{
		PublicID:   publicID,
		LineUserID: lineUserID,
		Name:       nameOrDefault(displayName),
		IsActive:   true,
	}

	if err := s.users.EnsureUser(ctx, user); err != nil {
		logger.Logger.Warn("Failed to upsert user, punch continues",
			zap.String("line_user_id", lineUserID),
			zap.Error(err),
		)
	}
}

func (s *AttendanceService) systemError(msg, lineUserID string, err error) *dto.PunchOutcome {
	logger.Logger.Error(msg,
		zap.String("line_user_id", lineUserID),
		zap.Error(err),
	)

	return &dto.PunchOutcome{
		Kind:    dto.PunchSystemError,
		Message: "❌ 系統錯誤，請稍後再試或聯繫管理員",
	}
}

func typeLabel(t model.PunchType) string {
	if t == model.PunchTypeClockIn {
		return "上班"
	}
	return "下班"
}

func siteOrUnknown(name string) string {
	if name == "" {
		return "未記錄"
	}
	return name
}

func nameOrDefault(name string) string {
	if name == "" {
		return "員工"
	}
	return name
}
