package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lifelog/internal/clock"
)

const (
	contextRecentTransactionLimit = 10
	contextUpcomingDeadlineLimit  = 5
)

// LifeContext 汇总仪表盘各领域的数据，作为 AI 对话与报告的上下文。
type LifeContext struct {
	Financial LifeContextFinancial `json:"financial"`
	Habits    []LifeContextHabit   `json:"habits"`
	Tasks     LifeContextTasks     `json:"tasks"`
	Meta      LifeContextMeta      `json:"meta"`
}

type LifeContextFinancial struct {
	TotalBalance    decimal.Decimal `json:"totalBalance"`
	MonthlySpending decimal.Decimal `json:"monthlySpending"`
	FixedExpenses   decimal.Decimal `json:"fixedExpenses"`
	RecentActivity  []string        `json:"recentActivity"`
}

type LifeContextHabit struct {
	Name   string `json:"name"`
	Streak int    `json:"streak"`
}

type LifeContextTasks struct {
	PendingCount int      `json:"pendingCount"`
	TopPriority  []string `json:"topPriority"`
}

type LifeContextMeta struct {
	CurrentDate string `json:"currentDate"`
}

// LifeContextService 负责把账户、交易、习惯与待办数据组装成统一上下文。
type LifeContextService struct {
	clock        clock.Clock
	habits       *HabitService
	todos        *TodoService
	accounts     *BankAccountService
	transactions *TransactionService
	recurring    *RecurringExpenseService
}

func NewLifeContextService(
	clk clock.Clock,
	habits *HabitService,
	todos *TodoService,
	accounts *BankAccountService,
	transactions *TransactionService,
	recurring *RecurringExpenseService,
) *LifeContextService {
	return &LifeContextService{
		clock:        clk,
		habits:       habits,
		todos:        todos,
		accounts:     accounts,
		transactions: transactions,
		recurring:    recurring,
	}
}

// Build 汇总当前全部领域数据，任一子查询失败则整体失败。
func (s *LifeContextService) Build() (LifeContext, error) {
	today := s.clock.Today()

	summary, err := s.accounts.Summary()
	if err != nil {
		return LifeContext{}, fmt.Errorf("汇总账户余额失败: %w", err)
	}

	monthSpending, err := s.transactions.MonthSpending(today[:7])
	if err != nil {
		return LifeContext{}, fmt.Errorf("统计本月支出失败: %w", err)
	}

	fixedExpenses, err := s.recurring.MonthlyTotal()
	if err != nil {
		return LifeContext{}, fmt.Errorf("统计固定支出失败: %w", err)
	}

	recent, err := s.transactions.List()
	if err != nil {
		return LifeContext{}, fmt.Errorf("读取近期交易失败: %w", err)
	}
	if len(recent) > contextRecentTransactionLimit {
		recent = recent[:contextRecentTransactionLimit]
	}
	activity := make([]string, 0, len(recent))
	for _, tx := range recent {
		activity = append(activity, fmt.Sprintf("%s: %s (%s)", tx.Description, tx.Amount.String(), tx.Category))
	}

	habits, err := s.habits.List()
	if err != nil {
		return LifeContext{}, fmt.Errorf("读取习惯列表失败: %w", err)
	}
	habitStats := make([]LifeContextHabit, 0, len(habits))
	for _, h := range habits {
		habitStats = append(habitStats, LifeContextHabit{
			Name:   h.Name,
			Streak: h.Engine().Streak(today),
		})
	}

	pending, err := s.todos.Pending()
	if err != nil {
		return LifeContext{}, fmt.Errorf("读取待办列表失败: %w", err)
	}
	withDeadline := make([]string, 0, len(pending))
	type deadlineTodo struct {
		text     string
		deadline string
	}
	dated := make([]deadlineTodo, 0, len(pending))
	for _, t := range pending {
		if t.Deadline != "" {
			dated = append(dated, deadlineTodo{text: t.Text, deadline: t.Deadline})
		}
	}
	sort.Slice(dated, func(i, j int) bool { return dated[i].deadline < dated[j].deadline })
	for i, t := range dated {
		if i >= contextUpcomingDeadlineLimit {
			break
		}
		withDeadline = append(withDeadline, fmt.Sprintf("%s (Due: %s)", t.text, t.deadline))
	}

	return LifeContext{
		Financial: LifeContextFinancial{
			TotalBalance:    summary.TotalBalance,
			MonthlySpending: monthSpending,
			FixedExpenses:   fixedExpenses,
			RecentActivity:  activity,
		},
		Habits: habitStats,
		Tasks: LifeContextTasks{
			PendingCount: len(pending),
			TopPriority:  withDeadline,
		},
		Meta: LifeContextMeta{CurrentDate: today},
	}, nil
}
