package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type categoryPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// ListCategories 返回全部交易分类
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory 新建交易分类
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.categories.Add(service.CategoryInput{
		ID:    payload.ID,
		Name:  payload.Name,
		Color: payload.Color,
		Type:  payload.Type,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameRequired) {
			respondError(c, http.StatusBadRequest, "分类名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建分类失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": record})
}

// DeleteCategory 删除交易分类
func (a *API) DeleteCategory(c *gin.Context) {
	if err := a.categories.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "分类已删除"})
}
