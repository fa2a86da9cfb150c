package db

import "github.com/shopspring/decimal"

// 交易类型取值。
const (
	TransactionTypeExpense = "expense"
	TransactionTypeIncome  = "income"
)

// Transaction 定义了收支流水。
// Date 为本地日历日（YYYY-MM-DD），金额用 decimal 存储避免浮点误差。
type Transaction struct {
	Record
	Amount      decimal.Decimal `gorm:"type:numeric" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Type        string          `gorm:"size:10;not null" json:"type"`
	Category    string          `gorm:"size:50;index" json:"category"`
	Date        string          `gorm:"size:10;index" json:"date"`
}

// Category 定义了交易分类，ID 由用户给定（如 "food"），不走 UUID。
type Category struct {
	Record
	Name  string `gorm:"not null" json:"name"`
	Color string `gorm:"size:20" json:"color"`
	Type  string `gorm:"size:10" json:"type"`
}
