package db

// Todo 定义了待办事项模型。
// Deadline 为可选的 YYYY-MM-DD 日期，空字符串表示没有截止日。
type Todo struct {
	Record
	Text      string `gorm:"not null" json:"text"`
	Completed bool   `json:"completed"`
	Deadline  string `gorm:"size:10" json:"deadline,omitempty"`
}
