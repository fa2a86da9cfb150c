package db

import "github.com/lifelog/internal/habit"

// Habit 定义了习惯模型。
// History 与 ActiveDays 以 JSON 文本列存储，读取时由 habit 包完成
// 旧格式归一化；所有派生计算（状态循环、连胜、成功率）都在 habit 包内进行。
// TrackingStartDate 为空时，成功率统计从历史中最早的日期开始。
type Habit struct {
	Record
	Name              string         `gorm:"not null" json:"name"`
	ActiveDays        habit.Weekdays `gorm:"type:text" json:"active_days"`
	History           habit.History  `gorm:"type:text" json:"history"`
	TrackingStartDate string         `gorm:"size:10" json:"tracking_start_date,omitempty"`
}

// Engine 返回引擎计算所需的视图。
func (h Habit) Engine() habit.Habit {
	return habit.Habit{
		ActiveDays:        h.ActiveDays,
		History:           h.History,
		TrackingStartDate: h.TrackingStartDate,
	}
}
