// Package civil 提供固定 UTC+8 的日历边界计算。
// 打卡去重和月报都以台湾时间为准，和部署机器的时区无关。
package civil

import (
	"fmt"
	"time"
)

// Zone 固定 UTC+8 偏移，不依赖 tzdata
var Zone = time.FixedZone("UTC+8", 8*60*60)

// Date 台湾时间下的日历日期
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Boundary 闭区间 [Start, End]，可直接和 timestamptz 列做范围比较
type Boundary struct {
	Start time.Time
	End   time.Time
}

// Today 取 now 在 UTC+8 下的日历日期
func Today(now time.Time) Date {
	t := now.In(Zone)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DayBoundary 当天 00:00:00 至 23:59:59
func DayBoundary(d Date) Boundary {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Zone)
	end := time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, Zone)
	return Boundary{Start: start, End: end}
}

// MonthBoundary 当月 1 号 00:00:00 至最后一天 23:59:59。
// 最后一天用「下个月第 0 天」计算，闰年二月也正确。
func MonthBoundary(now time.Time) Boundary {
	t := now.In(Zone)

	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Zone)
	lastDay := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, Zone).Day()
	end := time.Date(t.Year(), t.Month(), lastDay, 23, 59, 59, 0, Zone)

	return Boundary{Start: start, End: end}
}

// Contains 判断 t 是否落在边界内（闭区间）
func (b Boundary) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// FormatTime 按台湾时间渲染 HH:mm 或 HH:mm:ss
func FormatTime(t time.Time, withSeconds bool) string {
	local := t.In(Zone)
	if withSeconds {
		return local.Format("15:04:05")
	}
	return local.Format("15:04")
}

// FormatDate 按台湾时间渲染 YYYY/MM/DD
func FormatDate(t time.Time) string {
	local := t.In(Zone)
	return fmt.Sprintf("%04d/%02d/%02d", local.Year(), int(local.Month()), local.Day())
}
