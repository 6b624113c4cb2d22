package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"dakabot/internal/model"
	"dakabot/internal/model/dto"
	"dakabot/pkg/civil"
	"dakabot/pkg/logger"
)

const summaryMaxDays = 10

// ReportStore 月报需要的查询能力
type ReportStore interface {
	ListForRange(ctx context.Context, lineUserID string, b civil.Boundary) ([]model.Attendance, error)
}

// ReportService 月度出勤汇总
type ReportService struct {
	punches ReportStore
}

func NewReport(punches ReportStore) *ReportService {
	return &ReportService{punches: punches}
}

// MonthlySummary 按台湾日历日聚合当月打卡记录。
// 记录按时间倒序取出，同一天同类型出现多条时取先遇到的那条。
func (s *ReportService) MonthlySummary(ctx context.Context, lineUserID string, now time.Time) *dto.MonthlySummary {
	boundary := civil.MonthBoundary(now)

	records, err := s.punches.ListForRange(ctx, lineUserID, boundary)
	if err != nil {
		logger.Logger.Error("Failed to load monthly records",
			zap.String("line_user_id", lineUserID),
			zap.Error(err),
		)
		return &dto.MonthlySummary{Message: "❌ 查詢失敗，請稍後再試"}
	}

	if len(records) == 0 {
		return &dto.MonthlySummary{Message: "📊 本月尚無出勤記錄"}
	}

	// 保持倒序遇到的日期顺序，最近的日期在前
	dayOrder := make([]string, 0)
	grouped := make(map[string]*dto.DailySummary)

	for _, record := range records {
		date := civil.FormatDate(record.CreatedAt)

		day, ok := grouped[date]
		if !ok {
			day = &dto.DailySummary{Date: date}
			grouped[date] = day
			dayOrder = append(dayOrder, date)
		}

		switch record.Type {
		case model.PunchTypeClockIn:
			if day.ClockIn == "" {
				day.ClockIn = civil.FormatTime(record.CreatedAt, false)
			}
		case model.PunchTypeClockOut:
			if day.ClockOut == "" {
				day.ClockOut = civil.FormatTime(record.CreatedAt, false)
			}
		}
	}

	shown := dayOrder
	omitted := 0
	if len(dayOrder) > summaryMaxDays {
		shown = dayOrder[:summaryMaxDays]
		omitted = len(dayOrder) - summaryMaxDays
	}

	days := make([]dto.DailySummary, 0, len(shown))

	var sb strings.Builder
	sb.WriteString("📊 本月出勤記錄\n\n")

	for _, date := range shown {
		day := grouped[date]
		days = append(days, *day)

		sb.WriteString(date)
		sb.WriteString("\n")
		if day.ClockIn != "" {
			sb.WriteString(fmt.Sprintf("  上班: %s\n", day.ClockIn))
		}
		if day.ClockOut != "" {
			sb.WriteString(fmt.Sprintf("  下班: %s\n", day.ClockOut))
		}
		sb.WriteString("\n")
	}

	if omitted > 0 {
		sb.WriteString(fmt.Sprintf("... 還有 %d 天記錄\n", omitted))
	}

	return &dto.MonthlySummary{
		Days:         days,
		OmittedDays:  omitted,
		TotalRecords: len(records),
		Message:      sb.String(),
	}
}
