package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/store"
	"gorm.io/gorm"
)

var (
	// ErrHabitNotFound 在指定习惯不存在时返回
	ErrHabitNotFound = errors.New("habit not found")
	// ErrHabitNameRequired 在习惯名称为空时返回
	ErrHabitNameRequired = errors.New("habit name is required")
	// ErrHabitEmptySchedule 在每周计划被显式置空时返回
	ErrHabitEmptySchedule = errors.New("habit needs at least one active day")
)

// 变更事件里使用的实体名。
const entityHabits = "habits"

// HabitService 负责习惯记录的增删改查与引擎派生操作。
// 引擎本身是纯函数，这里负责读取记录、调用引擎、写回并广播变更；
// 同一习惯的写入通过数据库事务内的重读保证串行，避免循环打卡丢更新。
type HabitService struct {
	db    *gorm.DB
	clock clock.Clock
	feed  *store.Feed
}

// HabitInput 定义创建习惯时可配置的字段。
// ActiveDays 为 nil 表示每天都启用。
type HabitInput struct {
	Name       string
	ActiveDays habit.Weekdays
}

// HabitStats 汇总习惯的连胜与成功率。
type HabitStats struct {
	Streak      int               `json:"streak"`
	SuccessRate habit.SuccessRate `json:"success_rate"`
}

// NewHabitService 构造 HabitService。
func NewHabitService(gdb *gorm.DB, clk clock.Clock, feed *store.Feed) *HabitService {
	return &HabitService{db: gdb, clock: clk, feed: feed}
}

// List 返回全部习惯，按创建时间倒序。
func (s *HabitService) List() ([]db.Habit, error) {
	var habits []db.Habit
	if err := s.db.Order("created_at DESC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// Get 根据 ID 获取习惯。
func (s *HabitService) Get(id string) (*db.Habit, error) {
	var record db.Habit
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &record, nil
}

// Create 新建习惯，历史为空，未配置计划时默认每天启用。
func (s *HabitService) Create(input HabitInput) (*db.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	days := input.ActiveDays.Normalize()
	if days != nil && len(days) == 0 {
		return nil, ErrHabitEmptySchedule
	}

	record := db.Habit{
		Name:       name,
		ActiveDays: days,
		History:    habit.History{},
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}

	s.feed.Created(entityHabits, record.ID, record)
	return &record, nil
}

// Delete 删除习惯，操作不可恢复。
func (s *HabitService) Delete(id string) error {
	if err := s.db.Delete(&db.Habit{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	s.feed.Deleted(entityHabits, id)
	return nil
}

// CycleStatus 对指定日期执行一次状态循环并持久化新历史。
// date 为空时取业务时钟的今天；未来日期的拦截由接口层负责，
// 服务层保持引擎语义不变以支持补录。
func (s *HabitService) CycleStatus(id, date string) (*db.Habit, error) {
	target := strings.TrimSpace(date)
	if target == "" {
		target = s.clock.Today()
	}
	if _, err := habit.ParseDate(target); err != nil {
		return nil, err
	}

	record, err := s.mutate(id, func(h *db.Habit) {
		h.History = h.Engine().Cycle(target)
	})
	if err != nil {
		return nil, err
	}

	s.feed.Updated(entityHabits, record.ID, record)
	return record, nil
}

// UpdateActiveDays 替换习惯的每周计划。
// 显式空集合会被拒绝：允许的禁用方式是删除习惯，而不是留下一个永不活跃的空计划。
func (s *HabitService) UpdateActiveDays(id string, days habit.Weekdays) (*db.Habit, error) {
	normalized := days.Normalize()
	if len(normalized) == 0 {
		return nil, ErrHabitEmptySchedule
	}

	record, err := s.mutate(id, func(h *db.Habit) {
		h.ActiveDays = normalized
	})
	if err != nil {
		return nil, err
	}

	s.feed.Updated(entityHabits, record.ID, record)
	return record, nil
}

// ResetStats 清空历史并把跟踪起始日重置为今天，原有连胜与成功率随之归零。
func (s *HabitService) ResetStats(id string) (*db.Habit, error) {
	today := s.clock.Today()

	record, err := s.mutate(id, func(h *db.Habit) {
		fresh := h.Engine().Reset(today)
		h.History = fresh.History
		h.TrackingStartDate = fresh.TrackingStartDate
	})
	if err != nil {
		return nil, err
	}

	s.feed.Updated(entityHabits, record.ID, record)
	return record, nil
}

// MarkMissedAll 对所有习惯补写昨天的 failed 记录并返回发生变更的习惯。
// 引擎保证幂等：已有记录或昨天休息的习惯不会被改动。
func (s *HabitService) MarkMissedAll() ([]db.Habit, error) {
	habits, err := s.List()
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	updated := make([]db.Habit, 0)

	for _, record := range habits {
		if _, changed := record.Engine().MarkMissed(today); !changed {
			continue
		}

		// 基于事务内重读后的状态再判定一次；并发写入已经记录了昨天时
		// 引擎返回 ok=false，直接跳过写入，不得回退到列表时的旧历史。
		saved, applied, err := s.mutateIf(record.ID, func(h *db.Habit) bool {
			fresh, ok := h.Engine().MarkMissed(today)
			if !ok {
				return false
			}
			h.History = fresh
			return true
		})
		if err != nil {
			return nil, err
		}
		if !applied {
			continue
		}

		s.feed.Updated(entityHabits, saved.ID, saved)
		updated = append(updated, *saved)
	}

	return updated, nil
}

// WeeklyStatus 返回包含参考日的周日到周六视图。
func (s *HabitService) WeeklyStatus(id, reference string) ([7]habit.DayStatus, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		ref = s.clock.Today()
	}

	record, err := s.Get(id)
	if err != nil {
		return [7]habit.DayStatus{}, err
	}
	return record.Engine().Week(ref), nil
}

// Stats 返回习惯的连胜与成功率。
func (s *HabitService) Stats(id, reference string) (*HabitStats, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		ref = s.clock.Today()
	}

	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	engine := record.Engine()
	return &HabitStats{
		Streak:      engine.Streak(ref),
		SuccessRate: engine.SuccessRate(ref),
	}, nil
}

// mutate 在事务内重读记录、应用修改并保存，保证同一习惯的写入串行。
func (s *HabitService) mutate(id string, apply func(*db.Habit)) (*db.Habit, error) {
	record, _, err := s.mutateIf(id, func(h *db.Habit) bool {
		apply(h)
		return true
	})
	return record, err
}

// mutateIf 与 mutate 相同，但 apply 返回 false 时不落盘，
// 用于事务内重读后发现无需变更的场景。
func (s *HabitService) mutateIf(id string, apply func(*db.Habit) bool) (*db.Habit, bool, error) {
	var record db.Habit
	applied := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHabitNotFound
			}
			return fmt.Errorf("find habit: %w", err)
		}

		if !apply(&record) {
			return nil
		}
		applied = true

		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("save habit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &record, applied, nil
}
