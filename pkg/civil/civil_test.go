package civil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday_UsesFixedOffset(t *testing.T) {
	// UTC 2025-03-10 17:30 = 台湾时间 2025-03-11 01:30
	now := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)

	d := Today(now)

	assert.Equal(t, 2025, d.Year)
	assert.Equal(t, time.March, d.Month)
	assert.Equal(t, 11, d.Day)
}

func TestToday_IgnoresHostTimezone(t *testing.T) {
	// 同一时刻用不同时区表示，日历日必须一致
	utc := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	ny := utc.In(time.FixedZone("EST", -5*60*60))

	assert.Equal(t, Today(utc), Today(ny))
}

func TestDayBoundary(t *testing.T) {
	b := DayBoundary(Date{Year: 2025, Month: time.March, Day: 11})

	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, Zone), b.Start)
	assert.Equal(t, time.Date(2025, 3, 11, 23, 59, 59, 0, Zone), b.End)
}

func TestDayBoundary_SplitsAroundMidnight(t *testing.T) {
	// 台湾时间 23:59 和次日 00:01 属于不同的打卡日
	lateNight := time.Date(2025, 3, 11, 23, 59, 0, 0, Zone)
	earlyMorning := time.Date(2025, 3, 12, 0, 1, 0, 0, Zone)

	b := DayBoundary(Today(lateNight))

	assert.True(t, b.Contains(lateNight))
	assert.False(t, b.Contains(earlyMorning))
}

func TestMonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, Zone)

	b := MonthBoundary(now)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, Zone), b.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, Zone), b.End)
}

func TestMonthBoundary_February(t *testing.T) {
	leap := MonthBoundary(time.Date(2024, 2, 10, 12, 0, 0, 0, Zone))
	assert.Equal(t, 29, leap.End.Day())

	nonLeap := MonthBoundary(time.Date(2025, 2, 10, 12, 0, 0, 0, Zone))
	assert.Equal(t, 28, nonLeap.End.Day())
}

func TestMonthBoundary_CrossMonthUTC(t *testing.T) {
	// UTC 2025-02-28 18:00 = 台湾时间 2025-03-01 02:00，应落到三月
	now := time.Date(2025, 2, 28, 18, 0, 0, 0, time.UTC)

	b := MonthBoundary(now)

	assert.Equal(t, time.March, b.Start.Month())
}

func TestBoundaryContains(t *testing.T) {
	b := DayBoundary(Date{Year: 2025, Month: time.March, Day: 11})

	assert.True(t, b.Contains(b.Start))
	assert.True(t, b.Contains(b.End))
	assert.False(t, b.Contains(b.Start.Add(-time.Second)))
	assert.False(t, b.Contains(b.End.Add(time.Second)))
}

func TestFormatTime(t *testing.T) {
	// UTC 01:04:05 = 台湾时间 09:04:05
	ts := time.Date(2025, 3, 11, 1, 4, 5, 0, time.UTC)

	assert.Equal(t, "09:04:05", FormatTime(ts, true))
	assert.Equal(t, "09:04", FormatTime(ts, false))
}

func TestFormatDate(t *testing.T) {
	// UTC 2025-03-10 17:30 = 台湾时间 2025-03-11
	ts := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025/03/11", FormatDate(ts))
}
