package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type shoppingPayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ListShoppingItems 返回购物清单
func (a *API) ListShoppingItems(c *gin.Context) {
	items, err := a.shopping.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取购物清单失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListExpenseSuggestions 返回已购买但未转记支出的条目
func (a *API) ListExpenseSuggestions(c *gin.Context) {
	items, err := a.shopping.Suggestions()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取补录建议失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateShoppingItem 新建购物条目
func (a *API) CreateShoppingItem(c *gin.Context) {
	var payload shoppingPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.shopping.Add(payload.Name, payload.Category)
	if err != nil {
		if errors.Is(err, service.ErrShoppingNameRequired) {
			respondError(c, http.StatusBadRequest, "条目名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建购物条目失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": record})
}

// ToggleShoppingItem 切换购买状态
func (a *API) ToggleShoppingItem(c *gin.Context) {
	record, err := a.shopping.ToggleBought(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrShoppingItemNotFound) {
			respondError(c, http.StatusNotFound, "购物条目不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新购物条目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": record})
}

// MarkShoppingItemExpensed 标记条目已转记为支出
func (a *API) MarkShoppingItemExpensed(c *gin.Context) {
	record, err := a.shopping.MarkExpensed(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrShoppingItemNotFound) {
			respondError(c, http.StatusNotFound, "购物条目不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新购物条目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": record})
}

// DeleteShoppingItem 删除购物条目
func (a *API) DeleteShoppingItem(c *gin.Context) {
	if err := a.shopping.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除购物条目失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "购物条目已删除"})
}
