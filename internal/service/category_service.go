package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/store"
	"gorm.io/gorm"
)

// ErrCategoryNameRequired 在分类名称为空时返回
var ErrCategoryNameRequired = errors.New("category name is required")

const entityCategories = "categories"

// 分类类型取值，both 表示同时用于收入与支出。
const (
	CategoryTypeExpense = "expense"
	CategoryTypeIncome  = "income"
	CategoryTypeBoth    = "both"
)

// CategoryService 负责交易分类。
// 分类 ID 由调用方给定（如 "food"），便于前端用稳定的标识引用。
type CategoryService struct {
	db   *gorm.DB
	feed *store.Feed
}

// CategoryInput 定义创建分类时的字段。
type CategoryInput struct {
	ID    string
	Name  string
	Color string
	Type  string
}

// NewCategoryService 构造 CategoryService。
func NewCategoryService(gdb *gorm.DB, feed *store.Feed) *CategoryService {
	return &CategoryService{db: gdb, feed: feed}
}

// List 返回全部分类。
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Add 新建分类，未指定 ID 时生成 UUID，类型不识别时按 expense 处理。
func (s *CategoryService) Add(input CategoryInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	categoryType := strings.TrimSpace(strings.ToLower(input.Type))
	switch categoryType {
	case CategoryTypeExpense, CategoryTypeIncome, CategoryTypeBoth:
	default:
		categoryType = CategoryTypeExpense
	}

	record := db.Category{
		Name:  name,
		Color: strings.TrimSpace(input.Color),
		Type:  categoryType,
	}
	record.ID = strings.TrimSpace(input.ID)

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.feed.Created(entityCategories, record.ID, record)
	return &record, nil
}

// Delete 删除分类，既有交易仍保留原分类字符串。
func (s *CategoryService) Delete(id string) error {
	if err := s.db.Delete(&db.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.feed.Deleted(entityCategories, id)
	return nil
}
