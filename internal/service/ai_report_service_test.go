package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
)

func setupReportStack(t *testing.T, today string) (*AIReportService, *SystemSettingService, *gorm.DB) {
	t.Helper()
	gdb := setupServiceTestDB(t,
		&db.SystemSetting{}, &db.Habit{}, &db.Todo{},
		&db.BankAccount{}, &db.BankBalanceSnapshot{},
		&db.Transaction{}, &db.RecurringExpense{},
	)
	clk := clock.Fixed(today)

	habits := NewHabitService(gdb, clk, nil)
	todos := NewTodoService(gdb, nil)
	accounts := NewBankAccountService(gdb, clk, nil)
	transactions := NewTransactionService(gdb, clk, nil)
	recurring := NewRecurringExpenseService(gdb, clk, nil, transactions)
	lifeContext := NewLifeContextService(clk, habits, todos, accounts, transactions, recurring)

	settings := NewSystemSettingService(gdb)
	return NewAIReportService(settings, clk, lifeContext), settings, gdb
}

func TestAIReportServiceGenerateWeekly(t *testing.T) {
	svc, settings, _ := setupReportStack(t, "2025-06-18")

	if _, err := settings.UpdateSettings(SystemSettingsInput{
		AIProvider: AIProviderGroq,
		GroqAPIKey: "gsk-test",
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	reportJSON := `{
		"summary": "Solid week with steady habits.",
		"highlights": ["Spent less than last week", "Exercise streak held", "Cleared two deadlines"],
		"spendingAnalysis": "Food dominated the spend.",
		"habitAnalysis": "Consistency improved midweek.",
		"suggestion": "Prep meals on Sunday.",
		"score": 82
	}`

	svc.SetGroqBaseURL("https://groq.test/openai/v1")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		var payload chatCompletionRequest
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if payload.ResponseFormat == nil || payload.ResponseFormat.Type != "json_object" {
			t.Fatal("report generation should request JSON mode")
		}

		// 模型偶尔会包一层代码块，服务端需要剥掉
		return &http.Response{StatusCode: http.StatusOK, Body: chatCompletionBody(t, "```json\n"+reportJSON+"\n```")}, nil
	}})

	report, err := svc.Generate(context.Background(), ReportTypeWeekly)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if report.Type != ReportTypeWeekly {
		t.Fatalf("unexpected report type: %s", report.Type)
	}
	if report.PeriodStart != "2025-06-12" || report.PeriodEnd != "2025-06-18" {
		t.Fatalf("unexpected period: %s..%s", report.PeriodStart, report.PeriodEnd)
	}
	if report.Summary != "Solid week with steady habits." {
		t.Fatalf("unexpected summary: %q", report.Summary)
	}
	if len(report.Highlights) != 3 || report.Score != 82 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestAIReportServiceGenerateMonthlyWindow(t *testing.T) {
	svc, settings, _ := setupReportStack(t, "2025-03-05")

	if _, err := settings.UpdateSettings(SystemSettingsInput{
		AIProvider: AIProviderGroq,
		GroqAPIKey: "gsk-test",
	}); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: chatCompletionBody(t, `{"summary":"ok","score":70}`)}, nil
	}})

	report, err := svc.Generate(context.Background(), ReportTypeMonthly)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	// 30 天窗口要跨过二月底
	if report.PeriodStart != "2025-02-04" || report.PeriodEnd != "2025-03-05" {
		t.Fatalf("unexpected period: %s..%s", report.PeriodStart, report.PeriodEnd)
	}
}

func TestAIReportServiceInvalidType(t *testing.T) {
	svc, _, _ := setupReportStack(t, "2025-06-18")

	if _, err := svc.Generate(context.Background(), ReportType("quarterly")); !errors.Is(err, ErrInvalidReportType) {
		t.Fatalf("expected ErrInvalidReportType, got %v", err)
	}
}
