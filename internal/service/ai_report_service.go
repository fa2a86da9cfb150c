package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/habit"
)

const (
	defaultOpenAIReportModel = "gpt-4o-mini"
	defaultGroqReportModel   = "openai/gpt-oss-120b"
	defaultReportMaxTokens   = 1000
	defaultReportTemperature = 0.7
)

// ReportType 表示报告覆盖的周期。
type ReportType string

const (
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeMonthly ReportType = "monthly"
)

// ErrInvalidReportType 表示请求了未知的报告周期。
var ErrInvalidReportType = errors.New("invalid report type")

// Report 是模型生成的结构化周期总结。
type Report struct {
	Type             ReportType `json:"type"`
	PeriodStart      string     `json:"period_start"`
	PeriodEnd        string     `json:"period_end"`
	Summary          string     `json:"summary"`
	Highlights       []string   `json:"highlights"`
	SpendingAnalysis string     `json:"spendingAnalysis"`
	HabitAnalysis    string     `json:"habitAnalysis"`
	Suggestion       string     `json:"suggestion"`
	Score            int        `json:"score"`
}

// AIReportService 汇总一段时间内的流水与习惯数据，让模型产出结构化报告。
type AIReportService struct {
	client  *aiChatClient
	clock   clock.Clock
	context *LifeContextService
}

// NewAIReportService 构造默认的 AIReportService。
func NewAIReportService(settings *SystemSettingService, clk clock.Clock, lifeContext *LifeContextService) *AIReportService {
	return &AIReportService{
		client:  newAIChatClient(settings, defaultOpenAIReportModel, defaultGroqReportModel),
		clock:   clk,
		context: lifeContext,
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AIReportService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetOpenAIBaseURL 覆盖默认的 OpenAI API 地址。
func (s *AIReportService) SetOpenAIBaseURL(base string) {
	s.client.SetOpenAIBaseURL(base)
}

// SetGroqBaseURL 覆盖默认的 Groq API 地址。
func (s *AIReportService) SetGroqBaseURL(base string) {
	s.client.SetGroqBaseURL(base)
}

// Generate 生成指定周期的报告，周期窗口以当天为终点向前回溯。
func (s *AIReportService) Generate(ctx context.Context, reportType ReportType) (Report, error) {
	today := s.clock.Today()

	var start string
	switch reportType {
	case ReportTypeWeekly:
		start = habit.AddDays(today, -6)
	case ReportTypeMonthly:
		start = habit.AddDays(today, -29)
	default:
		return Report{}, ErrInvalidReportType
	}
	if start == "" {
		return Report{}, fmt.Errorf("invalid reference date %q", today)
	}

	lifeContext, err := s.context.Build()
	if err != nil {
		return Report{}, fmt.Errorf("组装生活上下文失败: %w", err)
	}

	contextJSON, err := json.MarshalIndent(lifeContext, "", "  ")
	if err != nil {
		return Report{}, fmt.Errorf("序列化生活上下文失败: %w", err)
	}

	systemPrompt := buildReportPrompt(reportType, start, today, string(contextJSON))
	userPrompt := fmt.Sprintf("Generate the %s report.", reportType)
	logAIExchange("REPORT", "prompt", userPrompt)

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    defaultReportMaxTokens,
		Temperature:  defaultReportTemperature,
		JSONMode:     true,
	})
	if err != nil {
		return Report{}, err
	}
	logAIExchange("REPORT", "response", result.Content)

	var report Report
	if err := json.Unmarshal([]byte(stripCodeFence(result.Content)), &report); err != nil {
		return Report{}, fmt.Errorf("解析报告 JSON 失败: %w", err)
	}
	report.Type = reportType
	report.PeriodStart = start
	report.PeriodEnd = today
	return report, nil
}

func buildReportPrompt(reportType ReportType, start, end, contextJSON string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Generate a %s report (%s to %s).\n\n", reportType, start, end)
	builder.WriteString("Data: ")
	builder.WriteString(contextJSON)
	builder.WriteString("\n\nReturn STRICTLY valid JSON:\n")
	builder.WriteString(`{
    "summary": "1 sentence max - key insight only",
    "highlights": ["3 SHORT bullet points - 5-8 words each"],
    "spendingAnalysis": "1 sentence - spending pattern",
    "habitAnalysis": "1 sentence - habit consistency",
    "suggestion": "1 actionable tip - under 10 words",
    "score": 85
}`)
	builder.WriteString("\n\nBe extremely concise. No fluff.")
	return builder.String()
}

// stripCodeFence 去掉模型偶尔包裹在 JSON 外层的 Markdown 代码块。
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
