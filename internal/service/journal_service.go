package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/clock"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/store"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrJournalEntryNotFound 在日记不存在时返回
	ErrJournalEntryNotFound = errors.New("journal entry not found")
	// ErrJournalInvalidMood 在心情分值越界时返回
	ErrJournalInvalidMood = errors.New("mood score must be between 1 and 5")
)

const entityJournal = "journal_entries"

var (
	journalMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	journalSanitizer = bluemonday.UGCPolicy()
)

// JournalService 负责每日一篇的日记。
// 日记由三个引导问题与一个 1..5 的心情分值构成，一天只保留一条记录。
type JournalService struct {
	db    *gorm.DB
	clock clock.Clock
	feed  *store.Feed
}

// JournalInput 定义写日记时可更新的字段。
type JournalInput struct {
	MoodScore         int
	HowWasToday       string
	OnYourMind        string
	ChangeForTomorrow string
}

// NewJournalService 构造 JournalService。
func NewJournalService(gdb *gorm.DB, clk clock.Clock, feed *store.Feed) *JournalService {
	return &JournalService{db: gdb, clock: clk, feed: feed}
}

// Today 返回今天的日记，没有写过时返回 nil。
func (s *JournalService) Today() (*db.JournalEntry, error) {
	var record db.JournalEntry
	err := s.db.Where("date = ?", s.clock.Today()).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get today's journal entry: %w", err)
	}
	return &record, nil
}

// Week 返回最近七天（含今天）的日记，按日期倒序。
func (s *JournalService) Week() ([]db.JournalEntry, error) {
	today := s.clock.Today()
	weekAgo := habit.AddDays(today, -7)

	var entries []db.JournalEntry
	if err := s.db.Where("date >= ? AND date <= ?", weekAgo, today).
		Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal week: %w", err)
	}
	return entries, nil
}

// UpsertToday 创建或更新今天的日记。Date 上的唯一索引保证幂等。
func (s *JournalService) UpsertToday(input JournalInput) (*db.JournalEntry, error) {
	if input.MoodScore < 1 || input.MoodScore > 5 {
		return nil, ErrJournalInvalidMood
	}

	record := db.JournalEntry{
		Date:              s.clock.Today(),
		MoodScore:         input.MoodScore,
		HowWasToday:       strings.TrimSpace(input.HowWasToday),
		OnYourMind:        strings.TrimSpace(input.OnYourMind),
		ChangeForTomorrow: strings.TrimSpace(input.ChangeForTomorrow),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mood_score", "how_was_today", "on_your_mind", "change_for_tomorrow", "updated_at",
		}),
	}).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("upsert journal entry: %w", err)
	}

	if err := s.db.Where("date = ?", record.Date).First(&record).Error; err != nil {
		return nil, fmt.Errorf("reload journal entry: %w", err)
	}

	s.feed.Updated(entityJournal, record.ID, record)
	return &record, nil
}

// EntryHTML 将一篇日记渲染为净化后的 HTML 片段，用于只读展示。
func (s *JournalService) EntryHTML(id string) (string, error) {
	var record db.JournalEntry
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrJournalEntryNotFound
		}
		return "", fmt.Errorf("find journal entry: %w", err)
	}

	markdown := buildJournalMarkdown(record)

	var buf bytes.Buffer
	if err := journalMarkdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render journal entry: %w", err)
	}

	return string(journalSanitizer.SanitizeBytes(buf.Bytes())), nil
}

func buildJournalMarkdown(entry db.JournalEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", entry.Date)
	fmt.Fprintf(&b, "Mood: %d/5\n\n", entry.MoodScore)

	sections := []struct {
		title string
		body  string
	}{
		{"How was today?", entry.HowWasToday},
		{"What's on your mind?", entry.OnYourMind},
		{"One change for tomorrow", entry.ChangeForTomorrow},
	}
	for _, section := range sections {
		if strings.TrimSpace(section.body) == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", section.title, section.body)
	}

	return b.String()
}
