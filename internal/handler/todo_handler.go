package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type todoPayload struct {
	Text     string `json:"text"`
	Deadline string `json:"deadline"`
}

// ListTodos 返回全部待办
func (a *API) ListTodos(c *gin.Context) {
	todos, err := a.todos.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取待办列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// ListPendingTodos 返回未完成的待办，带截止日的在前
func (a *API) ListPendingTodos(c *gin.Context) {
	todos, err := a.todos.Pending()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取待办列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// CreateTodo 新建待办
func (a *API) CreateTodo(c *gin.Context) {
	var payload todoPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.todos.Add(payload.Text, payload.Deadline)
	if err != nil {
		if errors.Is(err, service.ErrTodoTextRequired) {
			respondError(c, http.StatusBadRequest, "待办内容不能为空")
			return
		}
		respondError(c, http.StatusBadRequest, "截止日期格式应为 YYYY-MM-DD")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"todo": record})
}

// ToggleTodo 切换完成状态
func (a *API) ToggleTodo(c *gin.Context) {
	record, err := a.todos.Toggle(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			respondError(c, http.StatusNotFound, "待办不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新待办失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": record})
}

// DeleteTodo 删除待办
func (a *API) DeleteTodo(c *gin.Context) {
	if err := a.todos.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除待办失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "待办已删除"})
}
