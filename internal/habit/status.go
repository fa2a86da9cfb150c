package habit

// Status 表示某个习惯在某一天的打卡状态。
// 空字符串代表“未记录”（neutral）：它不会被持久化，仅表示当天没有对应条目。
type Status string

const (
	// StatusNone 表示当天没有任何记录。
	StatusNone Status = ""
	// StatusCompleted 表示当天完成。
	StatusCompleted Status = "completed"
	// StatusFailed 表示当天失败。
	StatusFailed Status = "failed"
)

// Next 返回点击打卡后的下一个状态，构成 neutral -> completed -> failed -> neutral 的循环。
func (s Status) Next() Status {
	switch s {
	case StatusNone:
		return StatusCompleted
	case StatusCompleted:
		return StatusFailed
	default:
		return StatusNone
	}
}

// Valid 判断状态是否为可持久化的取值。
func (s Status) Valid() bool {
	return s == StatusCompleted || s == StatusFailed
}
