package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type journalPayload struct {
	MoodScore         int    `json:"mood_score"`
	HowWasToday       string `json:"how_was_today"`
	OnYourMind        string `json:"on_your_mind"`
	ChangeForTomorrow string `json:"change_for_tomorrow"`
}

// GetTodayJournal 返回今天的日记，还没写时 entry 为 null
func (a *API) GetTodayJournal(c *gin.Context) {
	entry, err := a.journal.Today()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取今日日记失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// GetJournalWeek 返回最近一周的日记
func (a *API) GetJournalWeek(c *gin.Context) {
	entries, err := a.journal.Week()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取日记列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// UpsertTodayJournal 写入或覆盖今天的日记
func (a *API) UpsertTodayJournal(c *gin.Context) {
	var payload journalPayload
	if !bindJSON(c, &payload, "请求参数格式错误") {
		return
	}

	entry, err := a.journal.UpsertToday(service.JournalInput{
		MoodScore:         payload.MoodScore,
		HowWasToday:       payload.HowWasToday,
		OnYourMind:        payload.OnYourMind,
		ChangeForTomorrow: payload.ChangeForTomorrow,
	})
	if err != nil {
		if errors.Is(err, service.ErrJournalInvalidMood) {
			respondError(c, http.StatusBadRequest, "心情分值应在 1 到 5 之间")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存日记失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// GetJournalHTML 返回一篇日记渲染后的 HTML 片段
func (a *API) GetJournalHTML(c *gin.Context) {
	rendered, err := a.journal.EntryHTML(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrJournalEntryNotFound) {
			respondError(c, http.StatusNotFound, "日记不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "渲染日记失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": rendered})
}
