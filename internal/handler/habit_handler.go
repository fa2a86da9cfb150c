package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/service"
)

type habitPayload struct {
	Name string `json:"name"`
	// ActiveDays 为 null 或缺省表示每天启用，取值 0（周日）到 6（周六）。
	ActiveDays *[]int `json:"active_days"`
}

type cycleStatusPayload struct {
	Date string `json:"date"`
}

func weekdaysFromPayload(days *[]int) habit.Weekdays {
	if days == nil {
		return nil
	}
	result := make(habit.Weekdays, 0, len(*days))
	for _, day := range *days {
		result = append(result, time.Weekday(day))
	}
	return result
}

// ListHabits 返回全部习惯
func (a *API) ListHabits(c *gin.Context) {
	habits, err := a.habits.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取习惯列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// GetHabit 返回单个习惯
func (a *API) GetHabit(c *gin.Context) {
	record, err := a.habits.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "习惯不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取习惯失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": record})
}

// CreateHabit 新建习惯
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.habits.Create(service.HabitInput{
		Name:       payload.Name,
		ActiveDays: weekdaysFromPayload(payload.ActiveDays),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHabitNameRequired):
			respondError(c, http.StatusBadRequest, "习惯名称不能为空")
		case errors.Is(err, service.ErrHabitEmptySchedule):
			respondError(c, http.StatusBadRequest, "每周计划至少要保留一天")
		default:
			respondError(c, http.StatusInternalServerError, "创建习惯失败")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"habit": record})
}

// DeleteHabit 删除习惯
func (a *API) DeleteHabit(c *gin.Context) {
	if err := a.habits.Delete(c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "删除习惯失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "习惯已删除"})
}

// CycleHabitStatus 把某一天的状态往前转一档。
// 只允许今天及更早的日期，补录由此入口完成。
func (a *API) CycleHabitStatus(c *gin.Context) {
	var payload cycleStatusPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	if payload.Date != "" {
		if _, err := habit.ParseDate(payload.Date); err != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
		if payload.Date > a.clock.Today() {
			respondError(c, http.StatusBadRequest, "不能给未来的日期打卡")
			return
		}
	}

	record, err := a.habits.CycleStatus(c.Param("id"), payload.Date)
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "习惯不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新打卡状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": record})
}

// UpdateHabitDays 替换习惯的每周计划
func (a *API) UpdateHabitDays(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	record, err := a.habits.UpdateActiveDays(c.Param("id"), weekdaysFromPayload(payload.ActiveDays))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHabitNotFound):
			respondError(c, http.StatusNotFound, "习惯不存在")
		case errors.Is(err, service.ErrHabitEmptySchedule):
			respondError(c, http.StatusBadRequest, "每周计划至少要保留一天")
		default:
			respondError(c, http.StatusInternalServerError, "更新每周计划失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": record})
}

// ResetHabitStats 清空历史并从今天重新开始统计
func (a *API) ResetHabitStats(c *gin.Context) {
	record, err := a.habits.ResetStats(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "习惯不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "重置统计失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": record})
}

// MarkMissedHabits 为所有习惯补写昨天的漏打记录
func (a *API) MarkMissedHabits(c *gin.Context) {
	updated, err := a.habits.MarkMissedAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "补录漏打记录失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GetHabitWeek 返回包含参考日的周视图
func (a *API) GetHabitWeek(c *gin.Context) {
	reference := c.Query("date")
	if reference != "" {
		if _, err := habit.ParseDate(reference); err != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
	}

	week, err := a.habits.WeeklyStatus(c.Param("id"), reference)
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "习惯不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取周视图失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"week": week})
}

// GetHabitStats 返回连胜与成功率
func (a *API) GetHabitStats(c *gin.Context) {
	reference := c.Query("date")
	if reference != "" {
		if _, err := habit.ParseDate(reference); err != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
	}

	stats, err := a.habits.Stats(c.Param("id"), reference)
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "习惯不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取习惯统计失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
