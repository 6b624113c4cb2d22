package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dakabot/internal/model"
	"dakabot/pkg/civil"
)

type fakeReportStore struct {
	records []model.Attendance
	err     error
}

func (f *fakeReportStore) ListForRange(ctx context.Context, lineUserID string, b civil.Boundary) ([]model.Attendance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestMonthlySummary_QueryFailure(t *testing.T) {
	svc := NewReport(&fakeReportStore{err: errors.New("db down")})

	summary := svc.MonthlySummary(context.Background(), testUserID, testNow)

	assert.Contains(t, summary.Message, "❌ 查詢失敗")
	assert.Empty(t, summary.Days)
}

func TestMonthlySummary_Empty(t *testing.T) {
	svc := NewReport(&fakeReportStore{})

	summary := svc.MonthlySummary(context.Background(), testUserID, testNow)

	assert.Equal(t, "📊 本月尚無出勤記錄", summary.Message)
	assert.Zero(t, summary.TotalRecords)
}

func TestMonthlySummary_GroupsByDay(t *testing.T) {
	day10In := time.Date(2025, 3, 10, 9, 2, 0, 0, civil.Zone)
	day10Out := time.Date(2025, 3, 10, 18, 31, 0, 0, civil.Zone)
	day11In := time.Date(2025, 3, 11, 8, 55, 0, 0, civil.Zone)

	// 仓储按时间倒序返回
	store := &fakeReportStore{records: []model.Attendance{
		punchAt(model.PunchTypeClockIn, day11In),
		punchAt(model.PunchTypeClockOut, day10Out),
		punchAt(model.PunchTypeClockIn, day10In),
	}}
	svc := NewReport(store)

	summary := svc.MonthlySummary(context.Background(), testUserID, testNow)

	require.Len(t, summary.Days, 2)
	assert.Equal(t, 3, summary.TotalRecords)

	// 最近的日期在前
	assert.Equal(t, "2025/03/11", summary.Days[0].Date)
	assert.Equal(t, "08:55", summary.Days[0].ClockIn)
	assert.Empty(t, summary.Days[0].ClockOut)

	assert.Equal(t, "2025/03/10", summary.Days[1].Date)
	assert.Equal(t, "09:02", summary.Days[1].ClockIn)
	assert.Equal(t, "18:31", summary.Days[1].ClockOut)

	assert.Contains(t, summary.Message, "📊 本月出勤記錄")
	assert.Contains(t, summary.Message, "  上班: 08:55\n")
	assert.Contains(t, summary.Message, "  下班: 18:31\n")
	assert.NotContains(t, summary.Message, "還有")
}

func TestMonthlySummary_FirstSeenWinsWithinDay(t *testing.T) {
	early := time.Date(2025, 3, 10, 9, 0, 0, 0, civil.Zone)
	late := time.Date(2025, 3, 10, 9, 30, 0, 0, civil.Zone)

	// 倒序返回时较晚的记录先被遇到
	store := &fakeReportStore{records: []model.Attendance{
		punchAt(model.PunchTypeClockIn, late),
		punchAt(model.PunchTypeClockIn, early),
	}}
	svc := NewReport(store)

	summary := svc.MonthlySummary(context.Background(), testUserID, testNow)

	require.Len(t, summary.Days, 1)
	assert.Equal(t, "09:30", summary.Days[0].ClockIn)
}

func TestMonthlySummary_CapsAtTenDays(t *testing.T) {
	var records []model.Attendance
	for day := 14; day >= 1; day-- {
		at := time.Date(2025, 3, day, 9, 0, 0, 0, civil.Zone)
		records = append(records, punchAt(model.PunchTypeClockIn, at))
	}

	svc := NewReport(&fakeReportStore{records: records})

	summary := svc.MonthlySummary(context.Background(), testUserID, testNow)

	assert.Len(t, summary.Days, 10)
	assert.Equal(t, 4, summary.OmittedDays)
	assert.Equal(t, 14, summary.TotalRecords)
	assert.Contains(t, summary.Message, fmt.Sprintf("... 還有 %d 天記錄\n", 4))

	// 显示的是最近的 10 天
	assert.Equal(t, "2025/03/14", summary.Days[0].Date)
	assert.Equal(t, "2025/03/05", summary.Days[9].Date)
}
