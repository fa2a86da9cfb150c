package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type systemSettingsRequest struct {
	DashboardName   string `json:"dashboardName"`
	Currency        string `json:"currency"`
	AIProvider      string `json:"aiProvider"`
	OpenAIAPIKey    string `json:"openaiApiKey"`
	GroqAPIKey      string `json:"groqApiKey"`
	AssistantPrompt string `json:"assistantPrompt"`
}

func (r systemSettingsRequest) toInput() service.SystemSettingsInput {
	return service.SystemSettingsInput{
		DashboardName:   r.DashboardName,
		Currency:        r.Currency,
		AIProvider:      r.AIProvider,
		OpenAIAPIKey:    r.OpenAIAPIKey,
		GroqAPIKey:      r.GroqAPIKey,
		AssistantPrompt: r.AssistantPrompt,
	}
}

func systemSettingsPayload(settings service.SystemSettings) gin.H {
	return gin.H{
		"dashboardName":   settings.DashboardName,
		"currency":        settings.Currency,
		"aiProvider":      settings.AIProvider,
		"openaiApiKey":    settings.OpenAIAPIKey,
		"groqApiKey":      settings.GroqAPIKey,
		"assistantPrompt": settings.AssistantPrompt,
	}
}

// GetSystemSettings 返回当前系统设置。
func (a *API) GetSystemSettings(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取系统设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": systemSettingsPayload(settings)})
}

// UpdateSystemSettings 保存系统设置。
func (a *API) UpdateSystemSettings(c *gin.Context) {
	var payload systemSettingsRequest
	if !bindJSON(c, &payload, "请填写完整的系统设置") {
		return
	}

	settings, err := a.system.UpdateSettings(payload.toInput())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存系统设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "系统设置已保存",
		"settings": systemSettingsPayload(settings),
	})
}
