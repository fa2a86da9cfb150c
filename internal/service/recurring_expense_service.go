package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrRecurringExpenseNotFound 在固定支出不存在时返回
	ErrRecurringExpenseNotFound = errors.New("recurring expense not found")
	// ErrRecurringNameRequired 在名称为空时返回
	ErrRecurringNameRequired = errors.New("recurring expense name is required")
)

const (
	entityRecurring = "recurring_expenses"

	monthLayout = "2006-01"
)

// RecurringExpenseService 负责每月固定支出及其按月转记。
// ProcessDue 每月最多为每项固定支出生成一笔交易，由 LastProcessed 的月份判定。
type RecurringExpenseService struct {
	db           *gorm.DB
	clock        clock.Clock
	feed         *store.Feed
	transactions *TransactionService
}

// RecurringExpenseInput 定义创建/更新固定支出时可配置的字段。
type RecurringExpenseInput struct {
	Name       string
	Amount     decimal.Decimal
	Category   string
	DayOfMonth int
}

// NewRecurringExpenseService 构造 RecurringExpenseService。
func NewRecurringExpenseService(gdb *gorm.DB, clk clock.Clock, feed *store.Feed, transactions *TransactionService) *RecurringExpenseService {
	return &RecurringExpenseService{db: gdb, clock: clk, feed: feed, transactions: transactions}
}

// List 返回全部固定支出，按创建时间倒序。
func (s *RecurringExpenseService) List() ([]db.RecurringExpense, error) {
	var expenses []db.RecurringExpense
	if err := s.db.Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list recurring expenses: %w", err)
	}
	return expenses, nil
}

// Add 新建固定支出，扣款日被收敛到 1..31。
func (s *RecurringExpenseService) Add(input RecurringExpenseInput) (*db.RecurringExpense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRecurringNameRequired
	}

	record := db.RecurringExpense{
		Name:       name,
		Amount:     input.Amount,
		Category:   strings.TrimSpace(input.Category),
		DayOfMonth: clampDayOfMonth(input.DayOfMonth),
		IsActive:   true,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create recurring expense: %w", err)
	}

	s.feed.Created(entityRecurring, record.ID, record)
	return &record, nil
}

// Update 更新固定支出的配置。
func (s *RecurringExpenseService) Update(id string, input RecurringExpenseInput) (*db.RecurringExpense, error) {
	record, err := s.get(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRecurringNameRequired
	}

	record.Name = name
	record.Amount = input.Amount
	record.Category = strings.TrimSpace(input.Category)
	record.DayOfMonth = clampDayOfMonth(input.DayOfMonth)

	if err := s.db.Save(record).Error; err != nil {
		return nil, fmt.Errorf("update recurring expense: %w", err)
	}

	s.feed.Updated(entityRecurring, record.ID, record)
	return record, nil
}

// ToggleActive 启用或停用固定支出，停用后不再参与按月转记。
func (s *RecurringExpenseService) ToggleActive(id string) (*db.RecurringExpense, error) {
	record, err := s.get(id)
	if err != nil {
		return nil, err
	}

	record.IsActive = !record.IsActive
	if err := s.db.Save(record).Error; err != nil {
		return nil, fmt.Errorf("toggle recurring expense: %w", err)
	}

	s.feed.Updated(entityRecurring, record.ID, record)
	return record, nil
}

// Delete 删除固定支出。
func (s *RecurringExpenseService) Delete(id string) error {
	if err := s.db.Delete(&db.RecurringExpense{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete recurring expense: %w", err)
	}
	s.feed.Deleted(entityRecurring, id)
	return nil
}

// ProcessDue 把本月已到扣款日且尚未转记的固定支出生成为交易流水。
// 每项支出每个自然月最多处理一次，返回本次新生成的交易。
func (s *RecurringExpenseService) ProcessDue() ([]db.Transaction, error) {
	expenses, err := s.List()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	currentDay := now.Day()
	currentMonth := now.Format(monthLayout)

	processed := make([]db.Transaction, 0)
	for _, expense := range expenses {
		if !expense.IsActive {
			continue
		}
		if monthOf(expense.LastProcessed) == currentMonth {
			continue
		}
		if currentDay < expense.DayOfMonth {
			continue
		}

		tx, err := s.transactions.Add(TransactionInput{
			Amount:      expense.Amount,
			Description: fmt.Sprintf("%s (Recurring)", expense.Name),
			Type:        db.TransactionTypeExpense,
			Category:    expense.Category,
		})
		if err != nil {
			return nil, err
		}

		expense.LastProcessed = s.clock.Today()
		if err := s.db.Save(&expense).Error; err != nil {
			return nil, fmt.Errorf("mark recurring expense processed: %w", err)
		}
		s.feed.Updated(entityRecurring, expense.ID, expense)

		processed = append(processed, *tx)
	}

	return processed, nil
}

// Upcoming 返回本月尚未到扣款日且尚未转记的固定支出，按扣款日升序。
func (s *RecurringExpenseService) Upcoming() ([]db.RecurringExpense, error) {
	expenses, err := s.List()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	currentDay := now.Day()
	currentMonth := now.Format(monthLayout)

	upcoming := make([]db.RecurringExpense, 0)
	for _, expense := range expenses {
		if !expense.IsActive {
			continue
		}
		if monthOf(expense.LastProcessed) == currentMonth {
			continue
		}
		if expense.DayOfMonth > currentDay {
			upcoming = append(upcoming, expense)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DayOfMonth < upcoming[j].DayOfMonth
	})

	return upcoming, nil
}

// MonthlyTotal 返回启用中的固定支出的月度总额。
func (s *RecurringExpenseService) MonthlyTotal() (decimal.Decimal, error) {
	expenses, err := s.List()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, expense := range expenses {
		if expense.IsActive {
			total = total.Add(expense.Amount)
		}
	}
	return total, nil
}

func (s *RecurringExpenseService) get(id string) (*db.RecurringExpense, error) {
	var record db.RecurringExpense
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringExpenseNotFound
		}
		return nil, fmt.Errorf("find recurring expense: %w", err)
	}
	return &record, nil
}

func clampDayOfMonth(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}

// monthOf 截取日期字符串的 YYYY-MM 部分，空值返回空字符串。
func monthOf(date string) string {
	if len(date) < len(monthLayout) {
		return ""
	}
	return date[:len(monthLayout)]
}
