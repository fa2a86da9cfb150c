package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
	"github.com/shopspring/decimal"
)

type bankAccountPayload struct {
	Name           string          `json:"name"`
	AccountType    string          `json:"account_type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
}

type updateBalancePayload struct {
	Balance decimal.Decimal `json:"balance"`
}

// ListBankAccounts 返回全部账户
func (a *API) ListBankAccounts(c *gin.Context) {
	accounts, err := a.accounts.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取账户列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// CreateBankAccount 新建账户并写入当天的初始快照
func (a *API) CreateBankAccount(c *gin.Context) {
	var payload bankAccountPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.accounts.Add(service.BankAccountInput{
		Name:           payload.Name,
		AccountType:    payload.AccountType,
		InitialBalance: payload.InitialBalance,
		Color:          payload.Color,
		Icon:           payload.Icon,
	})
	if err != nil {
		if errors.Is(err, service.ErrBankAccountNameRequired) {
			respondError(c, http.StatusBadRequest, "账户名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建账户失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": record})
}

// UpdateBankAccountBalance 更新余额并覆盖当天的快照
func (a *API) UpdateBankAccountBalance(c *gin.Context) {
	var payload updateBalancePayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.accounts.UpdateBalance(c.Param("id"), payload.Balance)
	if err != nil {
		if errors.Is(err, service.ErrBankAccountNotFound) {
			respondError(c, http.StatusNotFound, "账户不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新余额失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": record})
}

// DeleteBankAccount 删除账户及其快照
func (a *API) DeleteBankAccount(c *gin.Context) {
	if err := a.accounts.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除账户失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "账户已删除"})
}

// GetBalanceSummary 返回总余额与今日净变动
func (a *API) GetBalanceSummary(c *gin.Context) {
	summary, err := a.accounts.Summary()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "汇总余额失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
