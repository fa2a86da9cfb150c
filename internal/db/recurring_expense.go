package db

import "github.com/shopspring/decimal"

// RecurringExpense 定义了每月固定支出（房租、订阅等）。
// DayOfMonth 是每月应扣款的日子（1..31），LastProcessed 记录最近一次
// 转记为流水的日期，用于保证每月只生成一笔交易。
type RecurringExpense struct {
	Record
	Name          string          `gorm:"not null" json:"name"`
	Amount        decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Category      string          `gorm:"size:50" json:"category"`
	DayOfMonth    int             `json:"day_of_month"`
	IsActive      bool            `json:"is_active"`
	LastProcessed string          `gorm:"size:10" json:"last_processed,omitempty"`
}
