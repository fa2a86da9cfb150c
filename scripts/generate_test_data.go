package main

import (
	"fmt"
	"log"
	"time"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/config"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/service"
	"github.com/shopspring/decimal"
)

// 演示数据生成器：往数据库里填一批习惯、流水和日记，方便本地联调。
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	clk := clock.System{}
	createDemoHabits(clk)
	createDemoTodos()
	createDemoMoney(clk)
	createDemoJournal(clk)

	fmt.Println("演示数据生成完毕")
}

func createDemoHabits(clk clock.Clock) {
	habits := service.NewHabitService(db.DB, clk, nil)

	seeds := []service.HabitInput{
		{Name: "晨跑"},
		{Name: "阅读 30 分钟"},
		{Name: "力量训练", ActiveDays: habit.Weekdays{time.Monday, time.Wednesday, time.Friday}},
	}

	for _, seed := range seeds {
		record, err := habits.Create(seed)
		if err != nil {
			log.Printf("创建习惯 %s 失败: %v", seed.Name, err)
			continue
		}

		// 给最近一周随机补几次打卡
		for offset := 1; offset <= 7; offset++ {
			if offset%2 == 0 {
				continue
			}
			date := habit.AddDays(clk.Today(), -offset)
			if _, err := habits.CycleStatus(record.ID, date); err != nil {
				log.Printf("打卡 %s@%s 失败: %v", seed.Name, date, err)
			}
		}
		fmt.Printf("  习惯: %s\n", seed.Name)
	}
}

func createDemoTodos() {
	todos := service.NewTodoService(db.DB, nil)

	seeds := []struct{ text, deadline string }{
		{"交房租", ""},
		{"预约牙医", ""},
		{"准备周会材料", ""},
	}
	for _, seed := range seeds {
		if _, err := todos.Add(seed.text, seed.deadline); err != nil {
			log.Printf("创建待办 %s 失败: %v", seed.text, err)
			continue
		}
		fmt.Printf("  待办: %s\n", seed.text)
	}
}

func createDemoMoney(clk clock.Clock) {
	accounts := service.NewBankAccountService(db.DB, clk, nil)
	transactions := service.NewTransactionService(db.DB, clk, nil)
	recurring := service.NewRecurringExpenseService(db.DB, clk, nil, transactions)

	if _, err := accounts.Add(service.BankAccountInput{
		Name:           "日常账户",
		AccountType:    "checking",
		InitialBalance: decimal.NewFromInt(5200),
	}); err != nil {
		log.Printf("创建账户失败: %v", err)
	}

	seeds := []service.TransactionInput{
		{Amount: decimal.NewFromInt(38), Description: "午饭", Type: db.TransactionTypeExpense, Category: "food"},
		{Amount: decimal.NewFromInt(120), Description: "超市采购", Type: db.TransactionTypeExpense, Category: "grocery", Date: habit.AddDays(clk.Today(), -1)},
		{Amount: decimal.NewFromInt(8000), Description: "工资", Type: db.TransactionTypeIncome, Category: "salary", Date: habit.AddDays(clk.Today(), -3)},
	}
	for _, seed := range seeds {
		if _, err := transactions.Add(seed); err != nil {
			log.Printf("创建流水 %s 失败: %v", seed.Description, err)
			continue
		}
		fmt.Printf("  流水: %s\n", seed.Description)
	}

	if _, err := recurring.Add(service.RecurringExpenseInput{
		Name:       "房租",
		Amount:     decimal.NewFromInt(2600),
		Category:   "housing",
		DayOfMonth: 5,
	}); err != nil {
		log.Printf("创建固定支出失败: %v", err)
	}
}

func createDemoJournal(clk clock.Clock) {
	journal := service.NewJournalService(db.DB, clk, nil)

	if _, err := journal.UpsertToday(service.JournalInput{
		MoodScore:         4,
		HowWasToday:       "把拖了很久的事情处理掉了，轻松不少。",
		OnYourMind:        "下周的出行安排还没定。",
		ChangeForTomorrow: "睡前半小时不看手机。",
	}); err != nil {
		log.Printf("写入日记失败: %v", err)
		return
	}
	fmt.Println("  日记: 已写入今天的记录")
}
