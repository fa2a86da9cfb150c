package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
	"github.com/shopspring/decimal"
)

type recurringExpensePayload struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	DayOfMonth int             `json:"day_of_month"`
}

// ListRecurringExpenses 返回全部固定支出
func (a *API) ListRecurringExpenses(c *gin.Context) {
	expenses, err := a.recurring.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取固定支出失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// CreateRecurringExpense 新建固定支出
func (a *API) CreateRecurringExpense(c *gin.Context) {
	var payload recurringExpensePayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.recurring.Add(service.RecurringExpenseInput{
		Name:       payload.Name,
		Amount:     payload.Amount,
		Category:   payload.Category,
		DayOfMonth: payload.DayOfMonth,
	})
	if err != nil {
		if errors.Is(err, service.ErrRecurringNameRequired) {
			respondError(c, http.StatusBadRequest, "固定支出名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建固定支出失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": record})
}

// UpdateRecurringExpense 更新固定支出
func (a *API) UpdateRecurringExpense(c *gin.Context) {
	var payload recurringExpensePayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.recurring.Update(c.Param("id"), service.RecurringExpenseInput{
		Name:       payload.Name,
		Amount:     payload.Amount,
		Category:   payload.Category,
		DayOfMonth: payload.DayOfMonth,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecurringExpenseNotFound):
			respondError(c, http.StatusNotFound, "固定支出不存在")
		case errors.Is(err, service.ErrRecurringNameRequired):
			respondError(c, http.StatusBadRequest, "固定支出名称不能为空")
		default:
			respondError(c, http.StatusInternalServerError, "更新固定支出失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": record})
}

// ToggleRecurringExpense 启用或停用固定支出
func (a *API) ToggleRecurringExpense(c *gin.Context) {
	record, err := a.recurring.ToggleActive(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecurringExpenseNotFound) {
			respondError(c, http.StatusNotFound, "固定支出不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新固定支出失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": record})
}

// DeleteRecurringExpense 删除固定支出
func (a *API) DeleteRecurringExpense(c *gin.Context) {
	if err := a.recurring.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除固定支出失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "固定支出已删除"})
}

// ProcessRecurringExpenses 把本月到期的固定支出转记为交易
func (a *API) ProcessRecurringExpenses(c *gin.Context) {
	processed, err := a.recurring.ProcessDue()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "处理固定支出失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

// ListUpcomingRecurringExpenses 返回本月尚未到期的固定支出
func (a *API) ListUpcomingRecurringExpenses(c *gin.Context) {
	upcoming, err := a.recurring.Upcoming()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取固定支出失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming})
}
