package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrTransactionInvalidType 在交易类型不合法时返回
	ErrTransactionInvalidType = errors.New("transaction type must be expense or income")
	// ErrTransactionDescriptionRequired 在描述为空时返回
	ErrTransactionDescriptionRequired = errors.New("transaction description is required")
)

const entityTransactions = "transactions"

// TransactionService 负责收支流水与区间统计。
type TransactionService struct {
	db    *gorm.DB
	clock clock.Clock
	feed  *store.Feed
}

// TransactionInput 定义记账时的输入。Date 为空时取今天。
type TransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Type        string
	Category    string
	Date        string
}

// CategoryBreakdown 表示单个分类在一周支出中的占比。
type CategoryBreakdown struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// WeeklySpending 汇总一周（周日到周六）的支出概况，供展示与 AI 洞察使用。
type WeeklySpending struct {
	WeekStart         string              `json:"week_start"`
	WeekEnd           string              `json:"week_end"`
	ThisWeekTotal     decimal.Decimal     `json:"this_week_total"`
	LastWeekTotal     decimal.Decimal     `json:"last_week_total"`
	DailyAverage      decimal.Decimal     `json:"daily_average"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	HighestSpendDay   string              `json:"highest_spend_day"`
	HighestSpendTotal decimal.Decimal     `json:"highest_spend_total"`
}

// NewTransactionService 构造 TransactionService。
func NewTransactionService(gdb *gorm.DB, clk clock.Clock, feed *store.Feed) *TransactionService {
	return &TransactionService{db: gdb, clock: clk, feed: feed}
}

// List 返回全部流水，按日期倒序。
func (s *TransactionService) List() ([]db.Transaction, error) {
	var transactions []db.Transaction
	if err := s.db.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// ListBetween 返回指定日期区间（含端点）的流水。
func (s *TransactionService) ListBetween(start, end string) ([]db.Transaction, error) {
	var transactions []db.Transaction
	if err := s.db.Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list transactions between: %w", err)
	}
	return transactions, nil
}

// Add 记录一笔流水。
func (s *TransactionService) Add(input TransactionInput) (*db.Transaction, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrTransactionDescriptionRequired
	}

	txType := strings.TrimSpace(strings.ToLower(input.Type))
	if txType != db.TransactionTypeExpense && txType != db.TransactionTypeIncome {
		return nil, ErrTransactionInvalidType
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.clock.Today()
	} else if _, err := habit.ParseDate(date); err != nil {
		return nil, err
	}

	record := db.Transaction{
		Amount:      input.Amount,
		Description: description,
		Type:        txType,
		Category:    strings.TrimSpace(input.Category),
		Date:        date,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.feed.Created(entityTransactions, record.ID, record)
	return &record, nil
}

// Delete 删除一笔流水。
func (s *TransactionService) Delete(id string) error {
	if err := s.db.Delete(&db.Transaction{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.feed.Deleted(entityTransactions, id)
	return nil
}

// MonthSpending 汇总某个月（YYYY-MM）的支出总额。
func (s *TransactionService) MonthSpending(month string) (decimal.Decimal, error) {
	var transactions []db.Transaction
	if err := s.db.Where("type = ? AND date LIKE ?", db.TransactionTypeExpense, month+"%").
		Find(&transactions).Error; err != nil {
		return decimal.Zero, fmt.Errorf("list month transactions: %w", err)
	}

	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total, nil
}

// WeeklySummary 汇总包含参考日的那一周的支出概况，并带上上一周总额用于对比。
// reference 为空时取今天。
func (s *TransactionService) WeeklySummary(reference string) (*WeeklySpending, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		ref = s.clock.Today()
	}

	weekday, err := habit.WeekdayOf(ref)
	if err != nil {
		return nil, err
	}
	weekStart := habit.AddDays(ref, -int(weekday))
	weekEnd := habit.AddDays(weekStart, 6)
	lastWeekStart := habit.AddDays(weekStart, -7)
	lastWeekEnd := habit.AddDays(weekStart, -1)

	thisWeek, err := s.expensesBetween(weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	lastWeek, err := s.expensesBetween(lastWeekStart, lastWeekEnd)
	if err != nil {
		return nil, err
	}

	summary := &WeeklySpending{
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		ThisWeekTotal: decimal.Zero,
		LastWeekTotal: decimal.Zero,
	}

	byCategory := make(map[string]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)
	for _, tx := range thisWeek {
		summary.ThisWeekTotal = summary.ThisWeekTotal.Add(tx.Amount)
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		byDay[tx.Date] = byDay[tx.Date].Add(tx.Amount)
	}
	for _, tx := range lastWeek {
		summary.LastWeekTotal = summary.LastWeekTotal.Add(tx.Amount)
	}

	summary.DailyAverage = summary.ThisWeekTotal.Div(decimal.NewFromInt(7)).Round(2)

	hundred := decimal.NewFromInt(100)
	for category, amount := range byCategory {
		breakdown := CategoryBreakdown{Category: category, Amount: amount}
		if summary.ThisWeekTotal.IsPositive() {
			breakdown.Percentage = amount.Mul(hundred).Div(summary.ThisWeekTotal).Round(1)
		}
		summary.CategoryBreakdown = append(summary.CategoryBreakdown, breakdown)
	}
	sort.Slice(summary.CategoryBreakdown, func(i, j int) bool {
		return summary.CategoryBreakdown[i].Amount.GreaterThan(summary.CategoryBreakdown[j].Amount)
	})

	for date, amount := range byDay {
		if amount.GreaterThan(summary.HighestSpendTotal) {
			summary.HighestSpendDay = date
			summary.HighestSpendTotal = amount
		}
	}

	return summary, nil
}

func (s *TransactionService) expensesBetween(start, end string) ([]db.Transaction, error) {
	var transactions []db.Transaction
	if err := s.db.Where("type = ? AND date BETWEEN ? AND ?", db.TransactionTypeExpense, start, end).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list weekly expenses: %w", err)
	}
	return transactions, nil
}
