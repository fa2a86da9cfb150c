package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/habit"
	"github.com/lifelog/internal/store"
	"gorm.io/gorm"
)

var (
	// ErrTodoNotFound 在待办不存在时返回
	ErrTodoNotFound = errors.New("todo not found")
	// ErrTodoTextRequired 在待办内容为空时返回
	ErrTodoTextRequired = errors.New("todo text is required")
)

const entityTodos = "todos"

// TodoService 负责待办事项的增删改查。
type TodoService struct {
	db   *gorm.DB
	feed *store.Feed
}

// NewTodoService 构造 TodoService。
func NewTodoService(gdb *gorm.DB, feed *store.Feed) *TodoService {
	return &TodoService{db: gdb, feed: feed}
}

// List 返回全部待办，按创建时间倒序。
func (s *TodoService) List() ([]db.Todo, error) {
	var todos []db.Todo
	if err := s.db.Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Pending 返回未完成的待办，带截止日的排在前面。
func (s *TodoService) Pending() ([]db.Todo, error) {
	var todos []db.Todo
	if err := s.db.Where("completed = ?", false).
		Order("CASE WHEN deadline = '' THEN 1 ELSE 0 END, deadline ASC").
		Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list pending todos: %w", err)
	}
	return todos, nil
}

// Add 新建一条待办，deadline 可选（YYYY-MM-DD）。
func (s *TodoService) Add(text, deadline string) (*db.Todo, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrTodoTextRequired
	}

	deadline = strings.TrimSpace(deadline)
	if deadline != "" {
		if _, err := habit.ParseDate(deadline); err != nil {
			return nil, err
		}
	}

	record := db.Todo{Text: trimmed, Deadline: deadline}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.feed.Created(entityTodos, record.ID, record)
	return &record, nil
}

// Toggle 切换完成状态。
func (s *TodoService) Toggle(id string) (*db.Todo, error) {
	var record db.Todo
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}

	record.Completed = !record.Completed
	if err := s.db.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("toggle todo: %w", err)
	}

	s.feed.Updated(entityTodos, record.ID, record)
	return &record, nil
}

// Delete 删除待办。
func (s *TodoService) Delete(id string) error {
	if err := s.db.Delete(&db.Todo{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	s.feed.Deleted(entityTodos, id)
	return nil
}
