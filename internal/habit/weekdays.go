package habit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekdays 表示习惯的每周计划（0=周日..6=周六）。
// nil 表示未配置，等同于每天都启用；显式空集合表示习惯暂停（任何一天都不活跃）。
// 空集合属于允许但不推荐的状态，业务层在保存时会拒绝空输入。
type Weekdays []time.Weekday

// AllDays 返回包含一周七天的计划。
func AllDays() Weekdays {
	return Weekdays{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// Contains 判断某个星期是否处于计划内。
func (w Weekdays) Contains(day time.Weekday) bool {
	if w == nil {
		return true
	}
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Normalize 去重并过滤非法取值，保持 0..6 范围内的星期索引。
func (w Weekdays) Normalize() Weekdays {
	if w == nil {
		return nil
	}
	seen := [7]bool{}
	out := make(Weekdays, 0, len(w))
	for _, d := range w {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Value 以 JSON 数组文本存储每周计划。
func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	buf, err := json.Marshal([]time.Weekday(w))
	if err != nil {
		return nil, fmt.Errorf("encode active days: %w", err)
	}
	return string(buf), nil
}

// Scan 从数据库列还原每周计划，NULL 与空文本一律视为未配置。
func (w *Weekdays) Scan(src interface{}) error {
	var raw string
	switch value := src.(type) {
	case nil:
		*w = nil
		return nil
	case string:
		raw = value
	case []byte:
		raw = string(value)
	default:
		return fmt.Errorf("unsupported active days column type %T", src)
	}

	if strings.TrimSpace(raw) == "" || raw == "null" {
		*w = nil
		return nil
	}

	var days []time.Weekday
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return fmt.Errorf("decode active days: %w", err)
	}
	*w = Weekdays(days).Normalize()
	return nil
}
