// Package habit 实现习惯打卡的纯函数引擎：三态状态循环、每周计划、
// 连续天数与成功率统计、昨日漏打补录等派生计算。
// 引擎本身不做任何 I/O，持久化由调用方负责。
package habit

import (
	"math"
	"time"
)

// streakLookbackDays 限定连续天数回溯的最大范围。
const streakLookbackDays = 365

// Habit 是引擎操作所需的最小视图，由存储层的记录映射而来。
type Habit struct {
	ActiveDays        Weekdays
	History           History
	TrackingStartDate string
}

// DayStatus 描述周视图中的单日信息。
type DayStatus struct {
	DayIndex int    `json:"day_index"`
	Date     string `json:"date"`
	IsActive bool   `json:"is_active"`
	IsFuture bool   `json:"is_future"`
	IsToday  bool   `json:"is_today"`
	Status   Status `json:"status"`
}

// SuccessRate 汇总自跟踪起始日以来的成功率。
// Rate 为 nil 表示无法计算（没有起始日期或区间内没有活跃日）。
type SuccessRate struct {
	Rate          *int   `json:"rate"`
	CompletedDays int    `json:"completed_days"`
	TotalDays     int    `json:"total_days"`
	StartDate     string `json:"start_date,omitempty"`
}

// StatusOn 返回指定日期的状态，没有记录时为 StatusNone。
func (h Habit) StatusOn(date string) Status {
	return h.History.StatusOn(date)
}

// IsActiveDay 判断日期是否落在习惯的每周计划内，日期非法时返回 false。
func (h Habit) IsActiveDay(date string) bool {
	weekday, err := WeekdayOf(date)
	if err != nil {
		return false
	}
	return h.ActiveDays.Contains(weekday)
}

// Cycle 对指定日期执行一次状态循环并返回替换用的完整历史（按日期降序）。
// 引擎不校验日期是否在未来，补录与测试都依赖这一点；未来日期的拦截属于接口层职责。
func (h Habit) Cycle(date string) History {
	next := h.StatusOn(date).Next()

	out := make(History, 0, len(h.History)+1)
	for _, entry := range h.History {
		if entry.Date != date {
			out = append(out, entry)
		}
	}
	if next != StatusNone {
		out = append(out, Entry{Date: date, Status: next})
	}
	return out.sortedDesc()
}

// Week 构建包含 reference 的周日到周六七日视图。
// 未来日期与非活跃日期一律报告 StatusNone，即使历史中存在残留记录
// （例如调整计划后遗留的打卡）也不会泄露到视图中。
func (h Habit) Week(reference string) [7]DayStatus {
	var week [7]DayStatus

	weekday, err := WeekdayOf(reference)
	if err != nil {
		return week
	}
	weekStart := AddDays(reference, -int(weekday))

	for i := 0; i < 7; i++ {
		date := AddDays(weekStart, i)
		day := DayStatus{
			DayIndex: i,
			Date:     date,
			IsActive: h.ActiveDays.Contains(time.Weekday(i)),
			IsFuture: date > reference,
			IsToday:  date == reference,
		}
		if day.IsActive && !day.IsFuture {
			day.Status = h.StatusOn(date)
		}
		week[i] = day
	}

	return week
}

// Streak 从 reference 起向前回溯最多 365 天统计连续完成的活跃日数。
// 非活跃日直接跳过，既不中断也不增加；failed 立即终止；
// 没有记录的过去活跃日同样终止，唯独 reference 当天允许“尚未决定”，
// 此时继续检查前一个活跃日而不计数。
func (h Habit) Streak(reference string) int {
	if _, err := ParseDate(reference); err != nil {
		return 0
	}

	streak := 0
	for i := 0; i <= streakLookbackDays; i++ {
		date := AddDays(reference, -i)
		if !h.IsActiveDay(date) {
			continue
		}

		switch h.StatusOn(date) {
		case StatusCompleted:
			streak++
		case StatusFailed:
			return streak
		default:
			if date != reference {
				return streak
			}
			// 今天还没打卡，不破坏连胜，继续向前看
		}
	}

	return streak
}

// SuccessRate 计算自起始日以来活跃日的完成比例。
// 起始日取 TrackingStartDate，缺失时回退到历史中最早的日期。
// 每周计划按查询时刻求值：落在当前非活跃星期上的历史记录不参与统计，
// 即使打卡时那天还是活跃日。统计区间为 [起始日, 参考日]，
// 区间外的记录（例如重置后再补录的旧日期）同样不参与统计。
func (h Habit) SuccessRate(reference string) SuccessRate {
	start := h.TrackingStartDate
	if start == "" {
		start = h.History.EarliestDate()
	}
	if start == "" {
		return SuccessRate{}
	}
	if _, err := ParseDate(start); err != nil {
		return SuccessRate{}
	}
	if _, err := ParseDate(reference); err != nil {
		return SuccessRate{StartDate: start}
	}

	totalDays := 0
	for date := start; date != "" && date <= reference; date = AddDays(date, 1) {
		if h.IsActiveDay(date) {
			totalDays++
		}
	}
	if totalDays <= 0 {
		return SuccessRate{StartDate: start}
	}

	completedDays := 0
	for _, entry := range h.History {
		if entry.Date < start || entry.Date > reference {
			continue
		}
		if entry.Status == StatusCompleted && h.IsActiveDay(entry.Date) {
			completedDays++
		}
	}

	rate := int(math.Round(float64(completedDays) / float64(totalDays) * 100))
	return SuccessRate{
		Rate:          &rate,
		CompletedDays: completedDays,
		TotalDays:     totalDays,
		StartDate:     start,
	}
}

// Reset 清空历史并把跟踪起始日改为 reference，现有连胜与成功率随之归零。
func (h Habit) Reset(reference string) Habit {
	h.History = History{}
	h.TrackingStartDate = reference
	return h
}

// MarkMissed 为 reference 前一天补写 failed 记录。
// 仅当昨天是活跃日且没有任何记录时才写入，天然幂等；
// 回填范围固定为一天，不会追溯更早的空档。
func (h Habit) MarkMissed(reference string) (History, bool) {
	yesterday := AddDays(reference, -1)
	if yesterday == "" {
		return h.History, false
	}
	if !h.IsActiveDay(yesterday) {
		return h.History, false
	}
	if h.StatusOn(yesterday) != StatusNone {
		return h.History, false
	}

	out := make(History, 0, len(h.History)+1)
	out = append(out, h.History...)
	out = append(out, Entry{Date: yesterday, Status: StatusFailed})
	return out.sortedDesc(), true
}
