package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func setupHabitService(t *testing.T, today string) *HabitService {
	t.Helper()
	gdb := setupServiceTestDB(t, &db.Habit{})
	return NewHabitService(gdb, clock.Fixed(today), nil)
}

func TestHabitServiceCreateAndList(t *testing.T) {
	svc := setupHabitService(t, "2025-06-18")

	created, err := svc.Create(HabitInput{Name: "  晨跑  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected habit to have ID")
	}
	if created.Name != "晨跑" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.ActiveDays != nil {
		t.Fatalf("expected nil schedule (every day), got %v", created.ActiveDays)
	}

	if _, err := svc.Create(HabitInput{Name: "   "}); !errors.Is(err, ErrHabitNameRequired) {
		t.Fatalf("expected ErrHabitNameRequired, got %v", err)
	}
	if _, err := svc.Create(HabitInput{Name: "读书", ActiveDays: habit.Weekdays{}}); !errors.Is(err, ErrHabitEmptySchedule) {
		t.Fatalf("expected ErrHabitEmptySchedule, got %v", err)
	}

	habits, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
}

func TestHabitServiceCycleStatusDefaultsToToday(t *testing.T) {
	svc := setupHabitService(t, "2025-06-18")

	created, err := svc.Create(HabitInput{Name: "冥想"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.CycleStatus(created.ID, "")
	if err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}
	if got := updated.Engine().StatusOn("2025-06-18"); got != habit.StatusCompleted {
		t.Fatalf("expected completed after first cycle, got %q", got)
	}

	// 再转两次回到中性，历史条目应被移除
	if _, err := svc.CycleStatus(created.ID, ""); err != nil {
		t.Fatalf("second cycle failed: %v", err)
	}
	updated, err = svc.CycleStatus(created.ID, "")
	if err != nil {
		t.Fatalf("third cycle failed: %v", err)
	}
	if len(updated.History) != 0 {
		t.Fatalf("expected empty history after full cycle, got %d entries", len(updated.History))
	}

	if _, err := svc.CycleStatus(created.ID, "not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := svc.CycleStatus("missing", ""); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestHabitServiceUpdateActiveDays(t *testing.T) {
	svc := setupHabitService(t, "2025-06-18")

	created, err := svc.Create(HabitInput{Name: "健身"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.UpdateActiveDays(created.ID, habit.Weekdays{time.Wednesday, time.Monday, time.Monday})
	if err != nil {
		t.Fatalf("UpdateActiveDays returned error: %v", err)
	}
	if len(updated.ActiveDays) != 2 {
		t.Fatalf("expected deduplicated schedule of 2 days, got %v", updated.ActiveDays)
	}

	if _, err := svc.UpdateActiveDays(created.ID, habit.Weekdays{}); !errors.Is(err, ErrHabitEmptySchedule) {
		t.Fatalf("expected ErrHabitEmptySchedule, got %v", err)
	}
	if _, err := svc.UpdateActiveDays(created.ID, nil); !errors.Is(err, ErrHabitEmptySchedule) {
		t.Fatalf("expected ErrHabitEmptySchedule for nil input, got %v", err)
	}
}

func TestHabitServiceResetStats(t *testing.T) {
	svc := setupHabitService(t, "2025-06-18")

	created, err := svc.Create(HabitInput{Name: "写日记"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.CycleStatus(created.ID, "2025-06-17"); err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}

	reset, err := svc.ResetStats(created.ID)
	if err != nil {
		t.Fatalf("ResetStats returned error: %v", err)
	}
	if len(reset.History) != 0 {
		t.Fatalf("expected empty history after reset, got %d entries", len(reset.History))
	}
	if reset.TrackingStartDate != "2025-06-18" {
		t.Fatalf("expected tracking start today, got %q", reset.TrackingStartDate)
	}

	stats, err := svc.Stats(created.ID, "")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Streak != 0 {
		t.Fatalf("expected zero streak after reset, got %d", stats.Streak)
	}
}

func TestHabitServiceMarkMissedAll(t *testing.T) {
	// 2025-06-18 周三，昨天周二
	svc := setupHabitService(t, "2025-06-18")

	daily, err := svc.Create(HabitInput{Name: "每日习惯"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	weekendOnly, err := svc.Create(HabitInput{Name: "周末习惯", ActiveDays: habit.Weekdays{time.Saturday, time.Sunday}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.MarkMissedAll()
	if err != nil {
		t.Fatalf("MarkMissedAll returned error: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("expected exactly 1 updated habit, got %d", len(updated))
	}
	if updated[0].ID != daily.ID {
		t.Fatalf("expected daily habit to be updated, got %s", updated[0].ID)
	}
	if got := updated[0].Engine().StatusOn("2025-06-17"); got != habit.StatusFailed {
		t.Fatalf("expected failed on yesterday, got %q", got)
	}

	// 幂等：第二次不应再变更
	again, err := svc.MarkMissedAll()
	if err != nil {
		t.Fatalf("second MarkMissedAll returned error: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no changes on second run, got %d", len(again))
	}

	rest, err := svc.Get(weekendOnly.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(rest.History) != 0 {
		t.Fatalf("rest-day habit should stay untouched, got %d entries", len(rest.History))
	}
}

func TestHabitServiceMarkMissedKeepsConcurrentCompletion(t *testing.T) {
	// 2025-06-18 周三；模拟列表快照与落盘之间昨天被并发打卡为 completed
	svc := setupHabitService(t, "2025-06-18")

	created, err := svc.Create(HabitInput{Name: "喝水"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// 快照里昨天尚未决定，补录看起来是必要的
	if _, changed := created.Engine().MarkMissed("2025-06-18"); !changed {
		t.Fatal("expected stale snapshot to require a backfill")
	}

	// 并发写入先一步完成了昨天的打卡
	if _, err := svc.CycleStatus(created.ID, "2025-06-17"); err != nil {
		t.Fatalf("CycleStatus returned error: %v", err)
	}

	// 事务内重读后引擎判定无需变更，不得落盘快照里的旧历史
	saved, applied, err := svc.mutateIf(created.ID, func(h *db.Habit) bool {
		fresh, ok := h.Engine().MarkMissed("2025-06-18")
		if !ok {
			return false
		}
		h.History = fresh
		return true
	})
	if err != nil {
		t.Fatalf("mutateIf returned error: %v", err)
	}
	if applied {
		t.Fatal("expected backfill to be skipped after the concurrent completion")
	}
	if got := saved.Engine().StatusOn("2025-06-17"); got != habit.StatusCompleted {
		t.Fatalf("concurrent completion must survive, got %q", got)
	}

	record, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got := record.Engine().StatusOn("2025-06-17"); got != habit.StatusCompleted {
		t.Fatalf("stored status must stay completed, got %q", got)
	}
}

func TestHabitServiceWeeklyStatusAndStats(t *testing.T) {
	svc := setupHabitService(t, "2025-06-18")

	created, err := svc.Create(HabitInput{Name: "阅读"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	for _, date := range []string{"2025-06-16", "2025-06-17", "2025-06-18"} {
		if _, err := svc.CycleStatus(created.ID, date); err != nil {
			t.Fatalf("CycleStatus(%s) returned error: %v", date, err)
		}
	}

	week, err := svc.WeeklyStatus(created.ID, "")
	if err != nil {
		t.Fatalf("WeeklyStatus returned error: %v", err)
	}
	if week[0].Date != "2025-06-15" {
		t.Fatalf("expected week to start Sunday 2025-06-15, got %s", week[0].Date)
	}
	if week[1].Status != habit.StatusCompleted || !week[3].IsToday {
		t.Fatalf("unexpected week view: %+v", week)
	}
	if week[4].Status != habit.StatusNone || !week[4].IsFuture {
		t.Fatalf("future day should be masked neutral: %+v", week[4])
	}

	stats, err := svc.Stats(created.ID, "")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Streak != 3 {
		t.Fatalf("expected streak 3, got %d", stats.Streak)
	}
	if stats.SuccessRate.Rate == nil || *stats.SuccessRate.Rate != 100 {
		t.Fatalf("expected 100%% success rate, got %+v", stats.SuccessRate)
	}
}
