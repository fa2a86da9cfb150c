package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrBankAccountNotFound 在账户不存在时返回
	ErrBankAccountNotFound = errors.New("bank account not found")
	// ErrBankAccountNameRequired 在账户名称为空时返回
	ErrBankAccountNameRequired = errors.New("bank account name is required")
)

const (
	entityBankAccounts = "bank_accounts"

	defaultAccountColor = "#4ecdc4"
	defaultAccountIcon  = "🏦"
)

// BankAccountService 负责银行账户与每日余额快照。
// 每次更新余额都会覆盖当天的快照，净变动通过对比今昨两天的快照得出。
type BankAccountService struct {
	db    *gorm.DB
	clock clock.Clock
	feed  *store.Feed
}

// BankAccountInput 定义创建账户时可配置的字段。
type BankAccountInput struct {
	Name           string
	AccountType    string
	InitialBalance decimal.Decimal
	Color          string
	Icon           string
}

// BalanceSummary 汇总所有账户的余额情况。
type BalanceSummary struct {
	TotalBalance   decimal.Decimal `json:"total_balance"`
	TodayNetChange decimal.Decimal `json:"today_net_change"`
	AccountCount   int             `json:"account_count"`
}

// NewBankAccountService 构造 BankAccountService。
func NewBankAccountService(gdb *gorm.DB, clk clock.Clock, feed *store.Feed) *BankAccountService {
	return &BankAccountService{db: gdb, clock: clk, feed: feed}
}

// List 返回全部账户，按创建时间倒序。
func (s *BankAccountService) List() ([]db.BankAccount, error) {
	var accounts []db.BankAccount
	if err := s.db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	return accounts, nil
}

// Add 新建账户并写入当天的初始余额快照。
func (s *BankAccountService) Add(input BankAccountInput) (*db.BankAccount, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBankAccountNameRequired
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = defaultAccountColor
	}
	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = defaultAccountIcon
	}

	record := db.BankAccount{
		Name:           name,
		AccountType:    strings.TrimSpace(input.AccountType),
		CurrentBalance: input.InitialBalance,
		Color:          color,
		Icon:           icon,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create bank account: %w", err)
	}

	if err := s.upsertSnapshot(record.ID, record.CurrentBalance); err != nil {
		return nil, err
	}

	s.feed.Created(entityBankAccounts, record.ID, record)
	return &record, nil
}

// UpdateBalance 更新账户余额并覆盖当天的快照。
func (s *BankAccountService) UpdateBalance(id string, balance decimal.Decimal) (*db.BankAccount, error) {
	var record db.BankAccount
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBankAccountNotFound
		}
		return nil, fmt.Errorf("find bank account: %w", err)
	}

	record.CurrentBalance = balance
	if err := s.db.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("update bank account balance: %w", err)
	}

	if err := s.upsertSnapshot(record.ID, balance); err != nil {
		return nil, err
	}

	s.feed.Updated(entityBankAccounts, record.ID, record)
	return &record, nil
}

// Delete 删除账户及其全部快照。
func (s *BankAccountService) Delete(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&db.BankBalanceSnapshot{}, "bank_account_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete balance snapshots: %w", err)
		}
		if err := tx.Delete(&db.BankAccount{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete bank account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.feed.Deleted(entityBankAccounts, id)
	return nil
}

// Summary 汇总总余额与今天的净变动。
// 净变动只统计今昨两天都有快照的账户，新账户不计入。
func (s *BankAccountService) Summary() (*BalanceSummary, error) {
	accounts, err := s.List()
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.CurrentBalance)
	}

	today := s.clock.Today()
	yesterday := habit.AddDays(today, -1)

	var snapshots []db.BankBalanceSnapshot
	if err := s.db.Where("snapshot_date IN ?", []string{today, yesterday}).
		Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("list balance snapshots: %w", err)
	}

	todayBalances := make(map[string]decimal.Decimal)
	yesterdayBalances := make(map[string]decimal.Decimal)
	for _, snapshot := range snapshots {
		if snapshot.SnapshotDate == today {
			todayBalances[snapshot.BankAccountID] = snapshot.Balance
		} else {
			yesterdayBalances[snapshot.BankAccountID] = snapshot.Balance
		}
	}

	change := decimal.Zero
	for accountID, todayBalance := range todayBalances {
		if yesterdayBalance, ok := yesterdayBalances[accountID]; ok {
			change = change.Add(todayBalance.Sub(yesterdayBalance))
		}
	}

	return &BalanceSummary{
		TotalBalance:   total,
		TodayNetChange: change,
		AccountCount:   len(accounts),
	}, nil
}

// upsertSnapshot 写入或覆盖当天的余额快照。
func (s *BankAccountService) upsertSnapshot(accountID string, balance decimal.Decimal) error {
	snapshot := db.BankBalanceSnapshot{
		BankAccountID: accountID,
		SnapshotDate:  s.clock.Today(),
		Balance:       balance,
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bank_account_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
	}).Create(&snapshot).Error; err != nil {
		return fmt.Errorf("upsert balance snapshot: %w", err)
	}
	return nil
}
