// Package clock 将“今天是哪一天”收敛到单一实现点，
// 业务层注入 Clock 后即可在测试中固定参考日期。
package clock

import "time"

const dateLayout = "2006-01-02"

// Clock 提供当前时间与本地日历日。
// Today 必须基于本地时区的年月日分量，不允许用 UTC 时间戳截断。
type Clock interface {
	Now() time.Time
	Today() string
}

// System 使用系统本地时区的真实时间。
type System struct{}

// Now 返回本地当前时间。
func (System) Now() time.Time {
	return time.Now()
}

// Today 返回本地日历日。
func (System) Today() string {
	return time.Now().Format(dateLayout)
}

// Fixed 是固定在某个日期的时钟，仅用于测试。
type Fixed string

// Now 返回固定日期当天的本地正午。
func (f Fixed) Now() time.Time {
	t, err := time.ParseInLocation(dateLayout, string(f), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t.Add(12 * time.Hour)
}

// Today 返回固定的日历日。
func (f Fixed) Today() string {
	return string(f)
}
