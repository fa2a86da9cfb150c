package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/store"
	"gorm.io/gorm"
)

var (
	// ErrShoppingItemNotFound 在购物条目不存在时返回
	ErrShoppingItemNotFound = errors.New("shopping item not found")
	// ErrShoppingNameRequired 在条目名称为空时返回
	ErrShoppingNameRequired = errors.New("shopping item name is required")
)

const (
	entityShopping          = "shopping_items"
	defaultShoppingCategory = "grocery"
)

// ShoppingService 负责购物清单。
// 已购买且未转记的条目是记账页的补录建议来源。
type ShoppingService struct {
	db   *gorm.DB
	feed *store.Feed
}

// NewShoppingService 构造 ShoppingService。
func NewShoppingService(gdb *gorm.DB, feed *store.Feed) *ShoppingService {
	return &ShoppingService{db: gdb, feed: feed}
}

// List 返回全部条目，按创建时间倒序。
func (s *ShoppingService) List() ([]db.ShoppingItem, error) {
	var items []db.ShoppingItem
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	return items, nil
}

// Suggestions 返回已购买但还没有转记为支出的条目。
func (s *ShoppingService) Suggestions() ([]db.ShoppingItem, error) {
	var items []db.ShoppingItem
	if err := s.db.Where("is_bought = ? AND added_to_expenses = ?", true, false).
		Order("updated_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list expense suggestions: %w", err)
	}
	return items, nil
}

// Add 新建条目，分类为空时使用默认分类。
func (s *ShoppingService) Add(name, category string) (*db.ShoppingItem, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrShoppingNameRequired
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = defaultShoppingCategory
	}

	record := db.ShoppingItem{Name: trimmed, Category: category}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create shopping item: %w", err)
	}

	s.feed.Created(entityShopping, record.ID, record)
	return &record, nil
}

// ToggleBought 切换购买状态。
func (s *ShoppingService) ToggleBought(id string) (*db.ShoppingItem, error) {
	record, err := s.get(id)
	if err != nil {
		return nil, err
	}

	record.IsBought = !record.IsBought
	if err := s.db.Save(record).Error; err != nil {
		return nil, fmt.Errorf("toggle shopping item: %w", err)
	}

	s.feed.Updated(entityShopping, record.ID, record)
	return record, nil
}

// MarkExpensed 标记条目已转记为支出。交易本身由调用方创建。
func (s *ShoppingService) MarkExpensed(id string) (*db.ShoppingItem, error) {
	record, err := s.get(id)
	if err != nil {
		return nil, err
	}

	record.AddedToExpenses = true
	if err := s.db.Save(record).Error; err != nil {
		return nil, fmt.Errorf("mark shopping item expensed: %w", err)
	}

	s.feed.Updated(entityShopping, record.ID, record)
	return record, nil
}

// Delete 删除条目。
func (s *ShoppingService) Delete(id string) error {
	if err := s.db.Delete(&db.ShoppingItem{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	s.feed.Deleted(entityShopping, id)
	return nil
}

func (s *ShoppingService) get(id string) (*db.ShoppingItem, error) {
	var record db.ShoppingItem
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingItemNotFound
		}
		return nil, fmt.Errorf("find shopping item: %w", err)
	}
	return &record, nil
}
