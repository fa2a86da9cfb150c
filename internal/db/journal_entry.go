package db

// JournalEntry 记录每天一篇的日记。
// Date 上有唯一索引保证一天只有一条，内容由三个引导问题加一个心情分值构成。
type JournalEntry struct {
	Record
	Date              string `gorm:"size:10;uniqueIndex;not null" json:"date"`
	MoodScore         int    `json:"mood_score"`
	HowWasToday       string `gorm:"type:text" json:"how_was_today"`
	OnYourMind        string `gorm:"type:text" json:"on_your_mind"`
	ChangeForTomorrow string `gorm:"type:text" json:"change_for_tomorrow"`
}

// TableName 保持与既有数据的表名一致。
func (JournalEntry) TableName() string {
	return "journal_entries"
}
