package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// AIProviderOpenAI 表示使用 OpenAI 能力。
	AIProviderOpenAI = "openai"
	// AIProviderGroq 表示使用 Groq 的 OpenAI 兼容接口。
	AIProviderGroq = "groq"
)

var supportedAIProviders = []string{AIProviderOpenAI, AIProviderGroq}

// ErrAIAPIKeyMissing 表示未提供必需的 AI 平台 API Key。
var ErrAIAPIKeyMissing = errors.New("api key is required")

// SystemSettings 描述可配置的系统信息。
type SystemSettings struct {
	DashboardName   string
	Currency        string
	AIProvider      string
	OpenAIAPIKey    string
	GroqAPIKey      string
	AssistantPrompt string
}

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	DashboardName   string
	Currency        string
	AIProvider      string
	OpenAIAPIKey    string
	GroqAPIKey      string
	AssistantPrompt string
}

// SystemSettingService 提供系统设置的读取与更新能力。
type SystemSettingService struct {
	db *gorm.DB
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{db: gdb}
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var settingKeys = []string{
	db.SettingKeyDashboardName,
	db.SettingKeyCurrency,
	db.SettingKeyAIProvider,
	db.SettingKeyOpenAIAPIKey,
	db.SettingKeyGroqAPIKey,
	db.SettingKeyAIAssistantPrompt,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := SystemSettings{
		DashboardName: "Lifelog",
		Currency:      "USD",
		AIProvider:    AIProviderOpenAI,
	}

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		value := strings.TrimSpace(record.Value)
		switch record.Key {
		case db.SettingKeyDashboardName:
			if value != "" {
				result.DashboardName = value
			}
		case db.SettingKeyCurrency:
			if value != "" {
				result.Currency = strings.ToUpper(value)
			}
		case db.SettingKeyAIProvider:
			if provider := normalizeAIProvider(value); provider != "" {
				result.AIProvider = provider
			}
		case db.SettingKeyOpenAIAPIKey:
			result.OpenAIAPIKey = value
		case db.SettingKeyGroqAPIKey:
			result.GroqAPIKey = value
		case db.SettingKeyAIAssistantPrompt:
			result.AssistantPrompt = value
		}
	}

	return result, nil
}

// UpdateSettings 覆写系统设置并返回更新后的结果。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAIProvider(input.AIProvider)
	if provider == "" {
		provider = AIProviderOpenAI
	}

	values := map[string]string{
		db.SettingKeyDashboardName:     strings.TrimSpace(input.DashboardName),
		db.SettingKeyCurrency:          strings.ToUpper(strings.TrimSpace(input.Currency)),
		db.SettingKeyAIProvider:        provider,
		db.SettingKeyOpenAIAPIKey:      strings.TrimSpace(input.OpenAIAPIKey),
		db.SettingKeyGroqAPIKey:        strings.TrimSpace(input.GroqAPIKey),
		db.SettingKeyAIAssistantPrompt: strings.TrimSpace(input.AssistantPrompt),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			record := db.SystemSetting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&record).Error; err != nil {
				return fmt.Errorf("save setting %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return SystemSettings{}, err
	}

	return s.GetSettings()
}

func normalizeAIProvider(provider string) string {
	provider = strings.TrimSpace(strings.ToLower(provider))
	for _, supported := range supportedAIProviders {
		if provider == supported {
			return provider
		}
	}
	return ""
}
