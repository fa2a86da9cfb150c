package habit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Entry 表示某一天的打卡记录。同一日期在 History 中最多出现一次。
type Entry struct {
	Date   string `json:"date"`
	Status Status `json:"status"`
}

// History 是按日期去重的打卡记录集合。
// 持久化顺序不做要求，所有派生计算都基于按日期降序排序后的视图。
type History []Entry

// UnmarshalJSON 在读取时统一归一化历史记录。
// 兼容两种存量格式：
//   - 结构化条目 {"date":"2024-06-10","status":"completed"}
//   - 旧格式裸日期/时间戳字符串 "2024-06-10T08:00:00.000Z"，视为 completed，
//     日期取时间戳的日期部分。
//
// 无法识别的条目仅记录日志后跳过，不会中断整个集合的解析。
func (h *History) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*h = nil
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode history: %w", err)
	}

	entries := make(History, 0, len(items))
	for _, item := range items {
		entry, ok := normalizeHistoryItem(item)
		if !ok {
			log.Printf("[habit] skipping malformed history entry: %s", string(item))
			continue
		}
		entries = append(entries, entry)
	}

	*h = entries
	return nil
}

func normalizeHistoryItem(item json.RawMessage) (Entry, bool) {
	var legacy string
	if err := json.Unmarshal(item, &legacy); err == nil {
		date := datePortion(legacy)
		if _, err := ParseDate(date); err != nil {
			return Entry{}, false
		}
		return Entry{Date: date, Status: StatusCompleted}, true
	}

	var structured struct {
		Date   string `json:"date"`
		Status Status `json:"status"`
	}
	if err := json.Unmarshal(item, &structured); err != nil {
		return Entry{}, false
	}
	if _, err := ParseDate(structured.Date); err != nil {
		return Entry{}, false
	}
	status := structured.Status
	if !status.Valid() {
		status = StatusCompleted
	}
	return Entry{Date: structured.Date, Status: status}, true
}

// datePortion 截取时间戳的日期部分，旧格式可能携带 T 之后的时间信息。
func datePortion(raw string) string {
	if idx := strings.IndexByte(raw, 'T'); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// Value 将历史记录序列化为 JSON 文本以便存入数据库。
func (h History) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]Entry(h))
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return string(buf), nil
}

// Scan 从数据库文本列中还原历史记录，同时完成旧格式归一化。
func (h *History) Scan(src interface{}) error {
	switch value := src.(type) {
	case nil:
		*h = nil
		return nil
	case string:
		if strings.TrimSpace(value) == "" {
			*h = nil
			return nil
		}
		return h.UnmarshalJSON([]byte(value))
	case []byte:
		if len(value) == 0 {
			*h = nil
			return nil
		}
		return h.UnmarshalJSON(value)
	default:
		return fmt.Errorf("unsupported history column type %T", src)
	}
}

// StatusOn 查找指定日期的状态，没有记录时返回 StatusNone。
func (h History) StatusOn(date string) Status {
	for _, entry := range h {
		if entry.Date == date {
			return entry.Status
		}
	}
	return StatusNone
}

// EarliestDate 返回历史中最早的日期，空历史返回空字符串。
func (h History) EarliestDate() string {
	earliest := ""
	for _, entry := range h {
		if earliest == "" || entry.Date < earliest {
			earliest = entry.Date
		}
	}
	return earliest
}

// sortedDesc 返回按日期降序排序的副本。
func (h History) sortedDesc() History {
	out := make(History, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
