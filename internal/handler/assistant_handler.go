package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type assistantAskRequest struct {
	Query string `json:"query"`
}

type reportRequest struct {
	Type string `json:"type"`
}

// AskAssistant 让 AI 助手基于当前生活数据回答问题。
func (a *API) AskAssistant(c *gin.Context) {
	var payload assistantAskRequest
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	answer, err := a.assistant.Ask(c.Request.Context(), payload.Query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistantQueryEmpty):
			respondError(c, http.StatusBadRequest, "提问内容不能为空")
		case errors.Is(err, service.ErrAIAPIKeyMissing):
			respondError(c, http.StatusBadRequest, "请先在系统设置中配置 AI API Key")
		default:
			respondError(c, http.StatusBadGateway, "AI 服务暂时不可用")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// GenerateReport 生成周报或月报。
func (a *API) GenerateReport(c *gin.Context) {
	var payload reportRequest
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	report, err := a.reports.Generate(c.Request.Context(), service.ReportType(payload.Type))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReportType):
			respondError(c, http.StatusBadRequest, "报告类型应为 weekly 或 monthly")
		case errors.Is(err, service.ErrAIAPIKeyMissing):
			respondError(c, http.StatusBadRequest, "请先在系统设置中配置 AI API Key")
		default:
			respondError(c, http.StatusBadGateway, "AI 服务暂时不可用")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
