package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultOpenAIAssistantModel = "gpt-4o-mini"
	defaultGroqAssistantModel   = "openai/gpt-oss-120b"
	defaultAssistantMaxTokens   = 1000
	defaultAssistantTemperature = 0.7
	maxAssistantQueryRuneCount  = 2000
)

const defaultAssistantSystemPrompt = `You are a concise life assistant with access to the user's financial and habit data.

RULES:
- Answer in 1-2 sentences MAX. Be direct and to the point.
- Use numbers and key facts only. No fluff.
- If data is unavailable, say "I don't have that info" briefly.
- Never expose raw JSON.`

// ErrAssistantQueryEmpty 表示用户未提供有效的提问内容。
var ErrAssistantQueryEmpty = errors.New("assistant query is empty")

// AssistantAnswer 返回助手的回复与少量元数据。
type AssistantAnswer struct {
	Answer           string `json:"answer"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

// AIAssistantService 基于全量生活上下文回答用户的自由提问。
type AIAssistantService struct {
	client  *aiChatClient
	context *LifeContextService
}

// NewAIAssistantService 构造默认的 AIAssistantService。
func NewAIAssistantService(settings *SystemSettingService, lifeContext *LifeContextService) *AIAssistantService {
	return &AIAssistantService{
		client:  newAIChatClient(settings, defaultOpenAIAssistantModel, defaultGroqAssistantModel),
		context: lifeContext,
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AIAssistantService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetOpenAIBaseURL 覆盖默认的 OpenAI API 地址。
func (s *AIAssistantService) SetOpenAIBaseURL(base string) {
	s.client.SetOpenAIBaseURL(base)
}

// SetGroqBaseURL 覆盖默认的 Groq API 地址。
func (s *AIAssistantService) SetGroqBaseURL(base string) {
	s.client.SetGroqBaseURL(base)
}

// Ask 把当前生活上下文注入系统提示词后向模型提问，
// 未配置 API Key 时返回 ErrAIAPIKeyMissing。
func (s *AIAssistantService) Ask(ctx context.Context, query string) (AssistantAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return AssistantAnswer{}, ErrAssistantQueryEmpty
	}
	query = truncateRunes(query, maxAssistantQueryRuneCount)

	lifeContext, err := s.context.Build()
	if err != nil {
		return AssistantAnswer{}, fmt.Errorf("组装生活上下文失败: %w", err)
	}

	contextJSON, err := json.MarshalIndent(lifeContext, "", "  ")
	if err != nil {
		return AssistantAnswer{}, fmt.Errorf("序列化生活上下文失败: %w", err)
	}

	settings, err := s.client.settings.GetSettings()
	if err != nil {
		return AssistantAnswer{}, fmt.Errorf("读取系统设置失败: %w", err)
	}

	systemPrompt := strings.TrimSpace(settings.AssistantPrompt)
	if systemPrompt == "" {
		systemPrompt = defaultAssistantSystemPrompt
	}
	systemPrompt = systemPrompt + "\n\nContext: " + string(contextJSON)

	logAIExchange("ASSISTANT", "prompt", query)

	result, err := s.client.callWithSettings(ctx, settings, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   query,
		MaxTokens:    defaultAssistantMaxTokens,
		Temperature:  defaultAssistantTemperature,
	})
	if err != nil {
		return AssistantAnswer{}, err
	}

	answer := strings.TrimSpace(result.Content)
	logAIExchange("ASSISTANT", "response", answer)

	return AssistantAnswer{
		Answer:           answer,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
	}, nil
}

func truncateRunes(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return string(runes[:limit])
}
