package db

import "github.com/shopspring/decimal"

// BankAccount 定义了银行账户模型。
// 信用卡账户的余额本身就是负数（欠款），汇总时直接相加即可。
type BankAccount struct {
	Record
	Name           string          `gorm:"not null" json:"name"`
	AccountType    string          `gorm:"size:30" json:"account_type"`
	CurrentBalance decimal.Decimal `gorm:"type:numeric" json:"current_balance"`
	Color          string          `gorm:"size:20" json:"color"`
	Icon           string          `gorm:"size:10" json:"icon"`
}

// BankBalanceSnapshot 记录账户的每日余额快照。
// BankAccountID + SnapshotDate 采用唯一索引，同一天重复更新余额时覆盖快照。
type BankBalanceSnapshot struct {
	Record
	BankAccountID string          `gorm:"index;index:idx_balance_snapshot_unique,unique;size:36" json:"bank_account_id"`
	SnapshotDate  string          `gorm:"size:10;index:idx_balance_snapshot_unique,unique" json:"snapshot_date"`
	Balance       decimal.Decimal `gorm:"type:numeric" json:"balance"`
}

// TableName 保持快照表命名一致。
func (BankBalanceSnapshot) TableName() string {
	return "bank_balance_snapshots"
}
