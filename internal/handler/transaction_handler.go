package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/service"
	"github.com/shopspring/decimal"
)

type transactionPayload struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

// ListTransactions 返回流水，可用 start/end 查询参数限定区间
func (a *API) ListTransactions(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	if (start == "") != (end == "") {
		respondError(c, http.StatusBadRequest, "start 与 end 必须同时提供")
		return
	}

	var (
		transactions interface{}
		err          error
	)
	if start != "" {
		if _, perr := habit.ParseDate(start); perr != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
		if _, perr := habit.ParseDate(end); perr != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
		transactions, err = a.transactions.ListBetween(start, end)
	} else {
		transactions, err = a.transactions.List()
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取流水失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// CreateTransaction 记一笔流水
func (a *API) CreateTransaction(c *gin.Context) {
	var payload transactionPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.transactions.Add(service.TransactionInput{
		Amount:      payload.Amount,
		Description: payload.Description,
		Type:        payload.Type,
		Category:    payload.Category,
		Date:        payload.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionDescriptionRequired):
			respondError(c, http.StatusBadRequest, "交易描述不能为空")
		case errors.Is(err, service.ErrTransactionInvalidType):
			respondError(c, http.StatusBadRequest, "交易类型应为 expense 或 income")
		default:
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": record})
}

// DeleteTransaction 删除一笔流水
func (a *API) DeleteTransaction(c *gin.Context) {
	if err := a.transactions.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除流水失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "流水已删除"})
}

// GetWeeklySpendingSummary 返回包含参考日的那一周的支出概况
func (a *API) GetWeeklySpendingSummary(c *gin.Context) {
	reference := c.Query("date")
	if reference != "" {
		if _, err := habit.ParseDate(reference); err != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
	}

	summary, err := a.transactions.WeeklySummary(reference)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "汇总周支出失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
