package service

import (
	"errors"
	"testing"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/shopspring/decimal"
)

func setupRecurringExpenseService(t *testing.T, today string) (*RecurringExpenseService, *TransactionService) {
	t.Helper()
	gdb := setupServiceTestDB(t, &db.RecurringExpense{}, &db.Transaction{})
	transactions := NewTransactionService(gdb, clock.Fixed(today), nil)
	return NewRecurringExpenseService(gdb, clock.Fixed(today), nil, transactions), transactions
}

func TestRecurringExpenseServiceAddClampsDayOfMonth(t *testing.T) {
	svc, _ := setupRecurringExpenseService(t, "2025-06-18")

	if _, err := svc.Add(RecurringExpenseInput{Name: " "}); !errors.Is(err, ErrRecurringNameRequired) {
		t.Fatalf("expected ErrRecurringNameRequired, got %v", err)
	}

	low, err := svc.Add(RecurringExpenseInput{Name: "房租", Amount: decimal.NewFromInt(2000), DayOfMonth: 0})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if low.DayOfMonth != 1 {
		t.Fatalf("expected day clamped to 1, got %d", low.DayOfMonth)
	}
	if !low.IsActive {
		t.Fatal("expected new expense to be active")
	}

	high, err := svc.Add(RecurringExpenseInput{Name: "网费", Amount: decimal.NewFromInt(99), DayOfMonth: 99})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if high.DayOfMonth != 31 {
		t.Fatalf("expected day clamped to 31, got %d", high.DayOfMonth)
	}
}

func TestRecurringExpenseServiceProcessDue(t *testing.T) {
	svc, transactions := setupRecurringExpenseService(t, "2025-06-18")

	due, err := svc.Add(RecurringExpenseInput{Name: "房租", Amount: decimal.NewFromInt(2000), Category: "housing", DayOfMonth: 5})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	notYet, err := svc.Add(RecurringExpenseInput{Name: "健身房", Amount: decimal.NewFromInt(200), DayOfMonth: 25})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	paused, err := svc.Add(RecurringExpenseInput{Name: "杂志", Amount: decimal.NewFromInt(30), DayOfMonth: 1})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.ToggleActive(paused.ID); err != nil {
		t.Fatalf("ToggleActive returned error: %v", err)
	}

	processed, err := svc.ProcessDue()
	if err != nil {
		t.Fatalf("ProcessDue returned error: %v", err)
	}
	if len(processed) != 1 {
		t.Fatalf("expected exactly 1 processed expense, got %d", len(processed))
	}
	if processed[0].Description != "房租 (Recurring)" {
		t.Fatalf("unexpected transaction description: %q", processed[0].Description)
	}
	if processed[0].Category != "housing" || processed[0].Date != "2025-06-18" {
		t.Fatalf("unexpected transaction: %+v", processed[0])
	}

	// 同月第二次处理不应重复转记
	again, err := svc.ProcessDue()
	if err != nil {
		t.Fatalf("second ProcessDue returned error: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no double processing within a month, got %d", len(again))
	}

	all, err := transactions.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single generated transaction, got %d", len(all))
	}

	refreshed, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for _, expense := range refreshed {
		switch expense.ID {
		case due.ID:
			if expense.LastProcessed != "2025-06-18" {
				t.Fatalf("expected LastProcessed set, got %q", expense.LastProcessed)
			}
		case notYet.ID, paused.ID:
			if expense.LastProcessed != "" {
				t.Fatalf("expected %s untouched, got %q", expense.Name, expense.LastProcessed)
			}
		}
	}
}

func TestRecurringExpenseServiceUpcomingAndMonthlyTotal(t *testing.T) {
	svc, _ := setupRecurringExpenseService(t, "2025-06-18")

	if _, err := svc.Add(RecurringExpenseInput{Name: "房租", Amount: decimal.NewFromInt(2000), DayOfMonth: 5}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Add(RecurringExpenseInput{Name: "保险", Amount: decimal.NewFromInt(300), DayOfMonth: 28}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.Add(RecurringExpenseInput{Name: "健身房", Amount: decimal.NewFromInt(200), DayOfMonth: 25}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	paused, err := svc.Add(RecurringExpenseInput{Name: "杂志", Amount: decimal.NewFromInt(30), DayOfMonth: 27})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, err := svc.ToggleActive(paused.ID); err != nil {
		t.Fatalf("ToggleActive returned error: %v", err)
	}

	upcoming, err := svc.Upcoming()
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming expenses, got %d", len(upcoming))
	}
	if upcoming[0].Name != "健身房" || upcoming[1].Name != "保险" {
		t.Fatalf("expected ascending day order, got %+v", upcoming)
	}

	total, err := svc.MonthlyTotal()
	if err != nil {
		t.Fatalf("MonthlyTotal returned error: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected active total 2500, got %s", total)
	}
}
