package habit

import (
	"fmt"
	"time"
)

// DateLayout 是历史记录使用的日期格式，按本地时区的年月日取值。
// 该格式的字符串比较与时间先后顺序一致。
const DateLayout = "2006-01-02"

// FormatDate 以 t 的年月日分量格式化日期字符串。
// 调用方传入本地时间即可得到本地日历日，绝不能先转换成 UTC 再截断。
func FormatDate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate 校验并解析 YYYY-MM-DD 字符串。
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// AddDays 对日期做纯日历运算，返回偏移 n 天后的日期字符串。
// 输入非法时返回空字符串，调用方据此跳过该日期。
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	year, month, day := t.Date()
	// 使用正午构造时间，避免夏令时边界落在午夜附近
	shifted := time.Date(year, month, day+n, 12, 0, 0, 0, time.UTC)
	return FormatDate(shifted)
}

// WeekdayOf 返回日期对应的星期（0=周日..6=周六）。
func WeekdayOf(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return time.Sunday, err
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Weekday(), nil
}
