package db

import "gorm.io/gorm"

// SystemSetting 存储可配置的系统级键值对。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeyDashboardName 表示仪表盘显示名称。
	SettingKeyDashboardName = "dashboard_name"
	// SettingKeyCurrency 表示金额展示使用的货币代码。
	SettingKeyCurrency = "currency"
	// SettingKeyAIProvider 表示当前启用的 AI 平台。
	SettingKeyAIProvider = "ai_provider"
	// SettingKeyOpenAIAPIKey 表示 OpenAI API Key。
	SettingKeyOpenAIAPIKey = "openai_api_key"
	// SettingKeyGroqAPIKey 表示 Groq API Key。
	SettingKeyGroqAPIKey = "groq_api_key"
	// SettingKeyAIAssistantPrompt 表示助手问答的系统提示词，空值使用内置默认。
	SettingKeyAIAssistantPrompt = "ai_assistant_prompt"
)
