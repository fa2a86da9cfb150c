package handler

import (
	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/service"
	"github.com/lifelog/internal/store"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	clock        clock.Clock
	feed         *store.Feed
	habits       *service.HabitService
	todos        *service.TodoService
	shopping     *service.ShoppingService
	journal      *service.JournalService
	accounts     *service.BankAccountService
	transactions *service.TransactionService
	recurring    *service.RecurringExpenseService
	categories   *service.CategoryService
	system       *service.SystemSettingService
	assistant    *service.AIAssistantService
	reports      *service.AIReportService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, clk clock.Clock, feed *store.Feed) *API {
	habits := service.NewHabitService(gdb, clk, feed)
	todos := service.NewTodoService(gdb, feed)
	accounts := service.NewBankAccountService(gdb, clk, feed)
	transactions := service.NewTransactionService(gdb, clk, feed)
	recurring := service.NewRecurringExpenseService(gdb, clk, feed, transactions)
	system := service.NewSystemSettingService(gdb)
	lifeContext := service.NewLifeContextService(clk, habits, todos, accounts, transactions, recurring)

	return &API{
		db:           gdb,
		clock:        clk,
		feed:         feed,
		habits:       habits,
		todos:        todos,
		shopping:     service.NewShoppingService(gdb, feed),
		journal:      service.NewJournalService(gdb, clk, feed),
		accounts:     accounts,
		transactions: transactions,
		recurring:    recurring,
		categories:   service.NewCategoryService(gdb, feed),
		system:       system,
		assistant:    service.NewAIAssistantService(system, lifeContext),
		reports:      service.NewAIReportService(system, clk, lifeContext),
	}
}

// DB exposes the underlying gorm instance for tests.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Assistant exposes the assistant service so tests can swap the HTTP client.
func (a *API) Assistant() *service.AIAssistantService {
	return a.assistant
}

// Reports exposes the report service so tests can swap the HTTP client.
func (a *API) Reports() *service.AIReportService {
	return a.reports
}
